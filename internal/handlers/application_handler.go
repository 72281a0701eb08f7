package handlers

import (
	"errors"
	"io"
	"net/http"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/jobs/:id/apply", middleware.AuthMiddleware(), h.Apply)

	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("", h.GetMyApplications)
		applications.GET("/:id", h.GetApplication)
		applications.GET("/:id/cv", h.DownloadCV)
		applications.POST("/:id/withdraw", h.Withdraw)
	}
}

// Apply godoc
// @Summary Откликнуться на вакансию
// @Description Multipart форма: cover_letter и необязательный PDF в поле cv. Без файла используется резюме из профиля.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вакансии"
// @Param cover_letter formData string false "Сопроводительное письмо"
// @Param cv formData file false "Резюме (PDF)"
// @Success 201 {object} dto.SubmitApplicationResponse
// @Failure 404 {object} apperrors.ErrorResponse "Вакансия не найдена"
// @Failure 409 {object} apperrors.ErrorResponse "Уже откликались"
// @Failure 415 {object} apperrors.ErrorResponse "Не PDF"
// @Router /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	cv, closeFile, err := FormFile(c, "cv")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer closeFile()

	resp, err := h.applicationService.Submit(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), req.CoverLetter, cv)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMyApplications godoc
// @Summary Мои отклики
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.ApplicationListResponse
// @Router /applications [get]
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.GetMyApplications(h.GetDB(c), userID, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetApplication godoc
// @Summary Детали отклика
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.GetApplication(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Withdraw godoc
// @Summary Отозвать отклик
// @Description Повторный отзыв не является ошибкой: ответ 200 с полем warning.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Withdraw(c.Request.Context(), h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyWithdrawn) {
			c.JSON(http.StatusOK, gin.H{
				"warning":     "This application has already been withdrawn!",
				"application": application,
			})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application withdrawn successfully!",
		"application": application,
	})
}

// DownloadCV godoc
// @Summary Скачать резюме отклика
// @Tags applications
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID отклика"
// @Success 200 {file} file
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id}/cv [get]
func (h *ApplicationHandler) DownloadCV(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	reader, filename, err := h.applicationService.OpenCV(c.Request.Context(), h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream CV", err, "application_id", c.Param("id"))
	}
}
