package handler

import (
	"event_proposal/core/api/dto"
	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/api/services"
	"event_proposal/core/common"
	"event_proposal/core/global"
	"event_proposal/core/logger"
	"event_proposal/core/storage"
	"event_proposal/core/utility"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileHandler xử lý upload file đính kèm hồ sơ và sổ cái thao tác file.
// File đi vào blob store qua global.StorageUploader; metadata gắn vào hồ sơ,
// mọi thao tác (kể cả đọc sổ cái) đều được ghi sổ append-only.
type FileHandler struct {
	BaseHandler[models.FileUploadAudit, dto.FileUploadAuditCreateInput, dto.FileUploadAuditUpdateInput]
	FileAuditService *services.FileAuditService
	ProposalService  *services.ProposalService
}

// NewFileHandler tạo mới FileHandler
func NewFileHandler() (*FileHandler, error) {
	fileAuditService, err := services.NewFileAuditService()
	if err != nil {
		return nil, fmt.Errorf("failed to create file audit service: %v", err)
	}
	proposalService, err := services.NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %v", err)
	}

	handler := &FileHandler{
		FileAuditService: fileAuditService,
		ProposalService:  proposalService,
	}
	handler.BaseService = handler.FileAuditService.BaseServiceMongoImpl

	// Khởi tạo filterOptions với giá trị mặc định
	handler.filterOptions = FilterOptions{
		DeniedFields: []string{
			"password",
			"token",
			"secret",
			"key",
			"hash",
		},
		AllowedOperators: []string{
			"$eq",
			"$gt",
			"$gte",
			"$lt",
			"$lte",
			"$in",
			"$nin",
			"$exists",
		},
		MaxFields: 10,
	}

	return handler, nil
}

// validDocumentTypes các loại tài liệu chấp nhận khi upload
var validDocumentTypes = []string{
	models.DocumentTypeGPOA,
	models.DocumentTypeProposal,
	models.DocumentTypeAccomplishment,
	models.DocumentTypeOther,
}

// parseProposalID đọc và validate proposalId từ URL params
func (h *FileHandler) parseProposalID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("proposalId")
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ProposalID không được để trống trong URL params",
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ProposalID '%s' không đúng định dạng MongoDB ObjectID", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// recordAudit ghi sổ cái thao tác file. Lỗi ghi sổ không làm fail request chính,
// chỉ ghi log cảnh báo để đối soát tay.
func (h *FileHandler) recordAudit(c fiber.Ctx, entry models.FileUploadAudit) {
	entry.IPAddress = c.IP()
	entry.UserAgent = c.Get("User-Agent")
	if actorID, ok := c.Locals("actor_id").(string); ok {
		entry.UploadedBy = actorID
	}

	if _, err := h.FileAuditService.Record(c.Context(), entry); err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"proposal_id": entry.ProposalID.Hex(),
			"action":      entry.Action,
			"error":       err.Error(),
		}).Warn("⚠️ Không ghi được sổ cái thao tác file")
	}
}

// UploadFile nhận file multipart, đẩy lên blob store, gắn metadata vào hồ sơ
// và ghi sổ cái với action=upload.
// Endpoint: POST /api/v1/files/:proposalId/upload
// Form fields:
//   - file: Nội dung file (bắt buộc)
//   - type: Loại tài liệu gpoa / proposal / accomplishment / other (mặc định: other)
func (h *FileHandler) UploadFile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		proposalID, err := h.parseProposalID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Hồ sơ phải tồn tại trước khi nhận file
		if _, err := h.ProposalService.FindOneById(c.Context(), proposalID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Request phải là multipart/form-data và có file đính kèm trong field 'file'",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		docType := c.FormValue("type", models.DocumentTypeOther)
		if !utility.Contains(validDocumentTypes, docType) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Loại tài liệu '%s' không hợp lệ, chỉ nhận: gpoa, proposal, accomplishment, other", docType),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Không đọc được file đính kèm: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		defer file.Close()

		uploadedAt := time.Now().UnixMilli()
		contentType := fileHeader.Header.Get("Content-Type")
		objectKey := storage.BuildObjectKey("proposals", proposalID.Hex(), fileHeader.Filename, uploadedAt)

		if err := global.StorageUploader.Upload(c.Context(), objectKey, file, fileHeader.Size, contentType); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Upload file lên blob storage thất bại: %v", err),
				common.StatusInternalServerError,
				err,
			))
			return nil
		}

		doc := models.ProposalDocument{
			Name:       fileHeader.Filename,
			Path:       objectKey,
			Mimetype:   contentType,
			Size:       fileHeader.Size,
			Type:       docType,
			UploadedAt: uploadedAt,
		}
		data, err := h.ProposalService.AttachDocument(c.Context(), proposalID, doc)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.recordAudit(c, models.FileUploadAudit{
			ProposalID: proposalID,
			Action:     models.FileAuditActionUpload,
			FileInfo: models.FileInfo{
				Name:     doc.Name,
				Path:     doc.Path,
				Mimetype: doc.Mimetype,
				Size:     doc.Size,
				Type:     doc.Type,
			},
			Timestamp: uploadedAt,
		})

		h.HandleResponse(c, data, nil)
		return nil
	})
}

// DownloadFile sinh pre-signed URL để tải một file của hồ sơ và ghi sổ cái action=download.
// Endpoint: GET /api/v1/files/:proposalId/download?path=<object key>
func (h *FileHandler) DownloadFile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		proposalID, err := h.parseProposalID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objectKey := c.Query("path", "")
		if objectKey == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Query param 'path' (object key của file) không được để trống",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		// File phải thuộc đúng hồ sơ trong URL
		proposal, err := h.ProposalService.FindOneById(c.Context(), proposalID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var found *models.ProposalDocument
		for i := range proposal.Documents {
			if proposal.Documents[i].Path == objectKey {
				found = &proposal.Documents[i]
				break
			}
		}
		if found == nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeDatabaseQuery,
				fmt.Sprintf("Hồ sơ không có file với object key '%s'", objectKey),
				common.StatusNotFound,
				nil,
			))
			return nil
		}

		url, expiry, err := global.StorageUploader.PresignedURL(c.Context(), objectKey)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không sinh được pre-signed URL: %v", err),
				common.StatusInternalServerError,
				err,
			))
			return nil
		}

		h.recordAudit(c, models.FileUploadAudit{
			ProposalID: proposalID,
			Action:     models.FileAuditActionDownload,
			FileInfo: models.FileInfo{
				Name:     found.Name,
				Path:     found.Path,
				Mimetype: found.Mimetype,
				Size:     found.Size,
				Type:     found.Type,
			},
		})

		h.HandleResponse(c, fiber.Map{
			"url":       url,
			"expiresAt": expiry.UnixMilli(),
		}, nil)
		return nil
	})
}

// GetAudit trả về sổ cái thao tác file của hồ sơ, mới nhất trước, có phân trang.
// Bản thân lần đọc này cũng được ghi sổ với action=view.
// Endpoint: GET /api/v1/files/:proposalId/audit
func (h *FileHandler) GetAudit(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		proposalID, err := h.parseProposalID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.FileAuditService.ListByProposal(c.Context(), proposalID, page, limit)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.recordAudit(c, models.FileUploadAudit{
			ProposalID: proposalID,
			Action:     models.FileAuditActionView,
		})

		h.HandleResponse(c, data, nil)
		return nil
	})
}
