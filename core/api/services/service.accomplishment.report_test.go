// Package services - Test kiểm tra nội dung tối thiểu của báo cáo trước khi nộp.
package services

import (
	"testing"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
)

func validReportData() models.ReportData {
	attendance := 85
	return models.ReportData{
		EventSummary:     "Giải bóng đá giao hữu giữa các khoa diễn ra đúng kế hoạch",
		ActualAttendance: &attendance,
		Objectives:       []string{"Gắn kết sinh viên giữa các khoa"},
	}
}

func TestValidateReportForSubmit_Valid(t *testing.T) {
	if err := ValidateReportForSubmit(validReportData()); err != nil {
		t.Errorf("báo cáo đủ nội dung tối thiểu nhưng bị từ chối: %v", err)
	}

	// actualAttendance = 0 vẫn hợp lệ, sự kiện có thể không ai tham dự
	data := validReportData()
	zero := 0
	data.ActualAttendance = &zero
	if err := ValidateReportForSubmit(data); err != nil {
		t.Errorf("actualAttendance = 0 phải hợp lệ, có lỗi: %v", err)
	}
}

func TestValidateReportForSubmit_Invalid(t *testing.T) {
	negative := -1

	cases := []struct {
		name   string
		mutate func(*models.ReportData)
	}{
		{"thiếu eventSummary", func(d *models.ReportData) { d.EventSummary = "" }},
		{"eventSummary toàn khoảng trắng", func(d *models.ReportData) { d.EventSummary = "   " }},
		{"thiếu actualAttendance", func(d *models.ReportData) { d.ActualAttendance = nil }},
		{"actualAttendance âm", func(d *models.ReportData) { d.ActualAttendance = &negative }},
		{"không có objective", func(d *models.ReportData) { d.Objectives = nil }},
	}

	for _, c := range cases {
		data := validReportData()
		c.mutate(&data)

		err := ValidateReportForSubmit(data)
		if err == nil {
			t.Errorf("[%s] báo cáo phải bị từ chối", c.name)
			continue
		}
		appErr, ok := err.(*common.Error)
		if !ok {
			t.Errorf("[%s] phải trả *common.Error, có %T", c.name, err)
			continue
		}
		if appErr.StatusCode != common.StatusBadRequest {
			t.Errorf("[%s] phải trả status 400, có %d", c.name, appErr.StatusCode)
		}
	}
}
