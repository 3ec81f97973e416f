package router

import (
	"event_proposal/core/api/handler"
	"event_proposal/core/api/middleware"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 KHÔNG gọi middleware nếu truyền trực tiếp trong route:
//
// ❌ CÁCH SAI (middleware bị bỏ qua):
//    router.Get("/path", middleware.ActorMiddleware(), handler)
//
// ✅ CÁCH ĐÚNG (đăng ký qua .Use() của group):
//    registerRouteWithMiddleware(router, "/prefix", "GET", "/path",
//        []fiber.Handler{actorMiddleware}, handler)
//
// Mọi route có middleware trong file này PHẢI đi qua registerRouteWithMiddleware.
// ============================================================================

// CONFIGS

// CRUDHandler định nghĩa interface cho các handler CRUD
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	FindOneAndUpdate(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	FindOneAndDelete(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	// Create
	InsOne  bool // Insert One
	InsMany bool // Insert Many

	// Read
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	// Update
	UpdOne  bool // Update One
	UpdMany bool // Update Many
	UpdById bool // Update By Id
	FindUpd bool // Find One And Update

	// Delete
	DelOne  bool // Delete One
	DelMany bool // Delete Many
	DelById bool // Delete By Id
	FindDel bool // Find One And Delete

	// Other
	Count    bool // Count Documents
	Distinct bool // Distinct
	Upsert   bool // Upsert One
	Exists   bool // Document Exists
}

// Config cho từng collection
var (
	readOnlyConfig = CRUDConfig{
		InsOne: false, InsMany: false,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: false, UpdMany: false, UpdById: false,
		FindUpd: false,
		DelOne:  false, DelMany: false, DelById: false,
		FindDel: false,
		Count:   true, Distinct: true,
		Upsert: false, Exists: true,
	}

	readWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdMany: true, UpdById: true,
		FindUpd: true,
		DelOne:  true, DelMany: true, DelById: true,
		FindDel: true,
		Count:   true, Distinct: true,
		Upsert: true, Exists: true,
	}

	// Insert đi qua luồng nghiệp vụ riêng (override InsertOne), mutation trạng thái
	// đi qua action endpoints; còn lại chỉ mở các operation đọc.
	intakeConfig = CRUDConfig{
		InsOne: true, InsMany: false,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: false, UpdMany: false, UpdById: false,
		FindUpd: false,
		DelOne:  false, DelMany: false, DelById: false,
		FindDel: false,
		Count:   true, Distinct: true,
		Upsert: false, Exists: true,
	}

	// Event Module Collections
	proposalConfig  = intakeConfig
	reportConfig    = intakeConfig
	fileAuditConfig = readOnlyConfig // Sổ cái append-only, chỉ đọc

	// Auth Module Collections
	organizationConfig = readWriteConfig
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// registerRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3)
//
// ⚠️ KHÔNG DÙNG cách trực tiếp router.Get(path, middleware, handler) - middleware sẽ KHÔNG được gọi!
//
// Ví dụ sử dụng:
//
//	actorMiddleware := middleware.ActorMiddleware()
//	registerRouteWithMiddleware(router, "/proposals", "POST", "/:id/review", []fiber.Handler{actorMiddleware}, handler)
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw) // ← ĐÂY LÀ CÁCH ĐÚNG - dùng .Use() thay vì truyền trực tiếp
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// registerCRUDRoutes đăng ký các route CRUD cho một collection
//
// ⚠️ LƯU Ý: Hàm này đã dùng registerRouteWithMiddleware (cách đúng), không cần sửa.
// Nếu thêm route mới bên ngoài hàm này, PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	// Mọi operation đều nhận định danh actor từ header X-Actor-Id
	actorMiddleware := middleware.ActorMiddleware()

	// Create operations
	if config.InsOne {
		registerRouteWithMiddleware(router, prefix, "POST", "/insert-one", []fiber.Handler{actorMiddleware}, h.InsertOne)
	}
	if config.InsMany {
		registerRouteWithMiddleware(router, prefix, "POST", "/insert-many", []fiber.Handler{actorMiddleware}, h.InsertMany)
	}

	// Read operations
	if config.Find {
		registerRouteWithMiddleware(router, prefix, "GET", "/find", []fiber.Handler{actorMiddleware}, h.Find)
	}
	if config.FindOne {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-one", []fiber.Handler{actorMiddleware}, h.FindOne)
	}
	if config.FindById {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", []fiber.Handler{actorMiddleware}, h.FindOneById)
	}
	if config.FindIds {
		registerRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", []fiber.Handler{actorMiddleware}, h.FindManyByIds)
	}
	if config.Paginate {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", []fiber.Handler{actorMiddleware}, h.FindWithPagination)
	}

	// Update operations
	if config.UpdOne {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-one", []fiber.Handler{actorMiddleware}, h.UpdateOne)
	}
	if config.UpdMany {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-many", []fiber.Handler{actorMiddleware}, h.UpdateMany)
	}
	if config.UpdById {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-by-id/:id", []fiber.Handler{actorMiddleware}, h.UpdateById)
	}
	if config.FindUpd {
		registerRouteWithMiddleware(router, prefix, "PUT", "/find-one-and-update", []fiber.Handler{actorMiddleware}, h.FindOneAndUpdate)
	}

	// Delete operations
	if config.DelOne {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-one", []fiber.Handler{actorMiddleware}, h.DeleteOne)
	}
	if config.DelMany {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-many", []fiber.Handler{actorMiddleware}, h.DeleteMany)
	}
	if config.DelById {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-by-id/:id", []fiber.Handler{actorMiddleware}, h.DeleteById)
	}
	if config.FindDel {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/find-one-and-delete", []fiber.Handler{actorMiddleware}, h.FindOneAndDelete)
	}

	// Other operations
	if config.Count {
		registerRouteWithMiddleware(router, prefix, "GET", "/count", []fiber.Handler{actorMiddleware}, h.CountDocuments)
	}
	if config.Distinct {
		registerRouteWithMiddleware(router, prefix, "GET", "/distinct/:field", []fiber.Handler{actorMiddleware}, h.Distinct)
	}
	if config.Upsert {
		registerRouteWithMiddleware(router, prefix, "POST", "/upsert-one", []fiber.Handler{actorMiddleware}, h.Upsert)
	}
	if config.Exists {
		registerRouteWithMiddleware(router, prefix, "GET", "/exists", []fiber.Handler{actorMiddleware}, h.DocumentExists)
	}
}

// CÁC HÀM ĐĂNG KÝ ROUTES

// registerSystemRoutes đăng ký các route cho system operations
func registerSystemRoutes(router fiber.Router) error {
	// Khởi tạo SystemHandler
	systemHandler, err := handler.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %v", err)
	}

	// System routes
	router.Get("/system/health", systemHandler.HandleHealth)

	return nil
}

// registerDraftRoutes đăng ký các route autosave bản nháp (response body trần).
// Các path ở root và /api giữ nguyên để tương thích với client autosave hiện có;
// riêng PATCH section nằm dưới /api.
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func registerDraftRoutes(router fiber.Router) error {
	draftHandler, err := handler.NewDraftHandler()
	if err != nil {
		return fmt.Errorf("failed to create draft handler: %v", err)
	}

	actorMiddleware := middleware.ActorMiddleware()
	registerRouteWithMiddleware(router, "/proposals/drafts", "POST", "", []fiber.Handler{actorMiddleware}, draftHandler.CreateDraft)
	registerRouteWithMiddleware(router, "/proposals/drafts", "GET", "", []fiber.Handler{actorMiddleware}, draftHandler.ListDrafts)
	registerRouteWithMiddleware(router, "/proposals/drafts", "GET", "/:id", []fiber.Handler{actorMiddleware}, draftHandler.GetDraft)
	registerRouteWithMiddleware(router, "/proposals/drafts", "POST", "/:id/submit", []fiber.Handler{actorMiddleware}, draftHandler.SubmitDraft)
	registerRouteWithMiddleware(router, "/api/proposals/drafts", "PATCH", "/:id/:section", []fiber.Handler{actorMiddleware}, draftHandler.PatchSection)

	return nil
}

// registerProposalRoutes đăng ký các route cho hồ sơ đề xuất sự kiện
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerProposalRoutes(router fiber.Router) error {
	proposalHandler, err := handler.NewProposalHandler()
	if err != nil {
		return fmt.Errorf("failed to create proposal handler: %v", err)
	}

	// Action routes cho vòng đời review và checklist tuân thủ
	actorMiddleware := middleware.ActorMiddleware()
	registerRouteWithMiddleware(router, "/proposals", "POST", "/:id/review", []fiber.Handler{actorMiddleware}, proposalHandler.Review)
	registerRouteWithMiddleware(router, "/proposals", "POST", "/:id/resubmit", []fiber.Handler{actorMiddleware}, proposalHandler.Resubmit)
	registerRouteWithMiddleware(router, "/proposals", "PUT", "/:id/compliance-documents", []fiber.Handler{actorMiddleware}, proposalHandler.SetComplianceDocument)

	// CRUD routes
	r.registerCRUDRoutes(router, "/proposals", proposalHandler, proposalConfig)

	return nil
}

// registerReportRoutes đăng ký các route cho báo cáo kết quả sau sự kiện
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerReportRoutes(router fiber.Router) error {
	reportHandler, err := handler.NewReportHandler()
	if err != nil {
		return fmt.Errorf("failed to create report handler: %v", err)
	}

	// Action routes cho vòng đời báo cáo
	actorMiddleware := middleware.ActorMiddleware()
	registerRouteWithMiddleware(router, "/reports", "PUT", "/:id/report-data", []fiber.Handler{actorMiddleware}, reportHandler.UpdateReportData)
	registerRouteWithMiddleware(router, "/reports", "POST", "/:id/submit", []fiber.Handler{actorMiddleware}, reportHandler.SubmitReport)
	registerRouteWithMiddleware(router, "/reports", "POST", "/:id/review", []fiber.Handler{actorMiddleware}, reportHandler.ReviewReport)

	// CRUD routes
	r.registerCRUDRoutes(router, "/reports", reportHandler, reportConfig)

	return nil
}

// registerOrganizationRoutes đăng ký các route cho tổ chức đứng tên hồ sơ
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerOrganizationRoutes(router fiber.Router) error {
	organizationHandler, err := handler.NewOrganizationHandler()
	if err != nil {
		return fmt.Errorf("failed to create organization handler: %v", err)
	}

	// Route đặc biệt bật/tắt tổ chức
	actorMiddleware := middleware.ActorMiddleware()
	registerRouteWithMiddleware(router, "/organizations", "PUT", "/:id/active", []fiber.Handler{actorMiddleware}, organizationHandler.SetActive)

	// CRUD routes
	r.registerCRUDRoutes(router, "/organizations", organizationHandler, organizationConfig)

	return nil
}

// registerFileRoutes đăng ký các route upload file và sổ cái thao tác file
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerFileRoutes(router fiber.Router) error {
	fileHandler, err := handler.NewFileHandler()
	if err != nil {
		return fmt.Errorf("failed to create file handler: %v", err)
	}

	actorMiddleware := middleware.ActorMiddleware()
	registerRouteWithMiddleware(router, "/files", "POST", "/:proposalId/upload", []fiber.Handler{actorMiddleware}, fileHandler.UploadFile)
	registerRouteWithMiddleware(router, "/files", "GET", "/:proposalId/download", []fiber.Handler{actorMiddleware}, fileHandler.DownloadFile)
	registerRouteWithMiddleware(router, "/files", "GET", "/:proposalId/audit", []fiber.Handler{actorMiddleware}, fileHandler.GetAudit)

	// Sổ cái chỉ đọc qua generic CRUD (append-only: không mở operation ghi)
	r.registerCRUDRoutes(router, "/files/audits", fileHandler, fileAuditConfig)

	return nil
}

// SetupRoutes thiết lập tất cả các route cho ứng dụng
func SetupRoutes(app *fiber.App) error {
	// Khởi tạo route prefix
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	// Khởi tạo router
	router := NewRouter(app)

	// 1. System Routes (root, nằm ngoài rate limit)
	if err := registerSystemRoutes(app); err != nil {
		return fmt.Errorf("failed to register system routes: %v", err)
	}

	// 2. Draft Routes (path cố định theo client autosave, không version)
	if err := registerDraftRoutes(app); err != nil {
		return fmt.Errorf("failed to register draft routes: %v", err)
	}

	// 3. Proposal Routes
	if err := router.registerProposalRoutes(v1); err != nil {
		return fmt.Errorf("failed to register proposal routes: %v", err)
	}

	// 4. Report Routes
	if err := router.registerReportRoutes(v1); err != nil {
		return fmt.Errorf("failed to register report routes: %v", err)
	}

	// 5. Organization Routes
	if err := router.registerOrganizationRoutes(v1); err != nil {
		return fmt.Errorf("failed to register organization routes: %v", err)
	}

	// 6. File Routes
	if err := router.registerFileRoutes(v1); err != nil {
		return fmt.Errorf("failed to register file routes: %v", err)
	}

	return nil
}
