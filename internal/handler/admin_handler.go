package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/middleware"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/apperror"
	"github.com/wingops/wingscore/pkg/response"
)

type AdminHandler struct {
	adminAuth       service.AdminAuthService
	adminService    service.AdminService
	exerciseService service.ExerciseService
	conflictService service.ConflictService
	reportService   service.ReportService
	rosterService   service.RosterService
	auditService    service.AuditService
}

func NewAdminHandler(
	adminAuth service.AdminAuthService,
	adminService service.AdminService,
	exerciseService service.ExerciseService,
	conflictService service.ConflictService,
	reportService service.ReportService,
	rosterService service.RosterService,
	auditService service.AuditService,
) *AdminHandler {
	return &AdminHandler{
		adminAuth:       adminAuth,
		adminService:    adminService,
		exerciseService: exerciseService,
		conflictService: conflictService,
		reportService:   reportService,
		rosterService:   rosterService,
		auditService:    auditService,
	}
}

// Auth exchanges a shared admin secret for the resolved tier (and wing, when
// the secret is wing-scoped).
func (h *AdminHandler) Auth(c *gin.Context) {
	var input dto.AdminAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	tier, wing, ok := h.adminAuth.Resolve(input.Password)
	if !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, dto.AdminAuthResponse{Tier: string(tier), Wing: wing})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	users, err := h.adminService.ListUsers(c.Request.Context(), tier, adminWing, optionalQuery(c, "wing"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	var input dto.AdminCreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), tier, adminWing, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	var input dto.AdminUpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), tier, adminWing, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ResetUser(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.adminService.ResetUser(c.Request.Context(), tier, adminWing, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.adminService.BanUser(c.Request.Context(), tier, adminWing, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteScore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.adminService.DeleteScore(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) CreateExercise(c *gin.Context) {
	var input dto.ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (h *AdminHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	var input dto.ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercise)
}

func (h *AdminHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListConflicts(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	entries, err := h.conflictService.List(c.Request.Context(), tier, adminWing, optionalQuery(c, "wing"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) MergeConflict(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	var input dto.MergeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.conflictService.Merge(c.Request.Context(), tier, adminWing, input.TargetUserID, input.SourceUserID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	reports, err := h.reportService.List(c.Request.Context(), tier, adminWing,
		optionalQuery(c, "wing"), optionalQuery(c, "status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *AdminHandler) ApproveReport(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.reportService.Approve(c.Request.Context(), tier, adminWing, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) CreateAccountFromReport(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	user, err := h.reportService.CreateAccount(c.Request.Context(), tier, adminWing, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) DismissReport(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.reportService.Dismiss(c.Request.Context(), tier, adminWing, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadRoster ingests a CSV of names under the admin's wing. OCS-tier
// callers must name the wing explicitly.
func (h *AdminHandler) UploadRoster(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)

	wing := h.adminAuth.EffectiveWing(tier, adminWing, optionalQuery(c, "wing"))
	if wing == nil {
		response.ResponseError(c, apperror.New(0, "wing context required for roster upload", apperror.ErrInvalidInput))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.New(0, "missing roster file", apperror.ErrInvalidInput))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	result, err := h.rosterService.Upload(c.Request.Context(), *wing, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ListAudit(c *gin.Context) {
	tier, adminWing := middleware.AdminContext(c)
	if tier == service.TierWing && adminWing == nil {
		response.ResponseError(c, apperror.ErrForbidden)
		return
	}

	wing := h.adminAuth.EffectiveWing(tier, adminWing, optionalQuery(c, "wing"))
	limit := 100
	actions, err := h.auditService.Recent(c.Request.Context(), wing, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, actions)
}
