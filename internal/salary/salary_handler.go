package salary

import (
	"errors"
	"net/http"

	"hr-backend/internal/shared/apperror"
	"hr-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetLatest serves the admin overview: one row per employee, the record
// currently in effect.
func (h *Handler) GetLatest(c *gin.Context) {
	resp, err := h.service.GetLatest(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateOrAmend(c *gin.Context) {
	var req AssignSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateOrAmend(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Amend(c *gin.Context) {
	var req AmendSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Amend(
		c.Request.Context(),
		c.Param("email"),
		c.Param("effectiveFrom"),
		req,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Retire(c *gin.Context) {
	err := h.service.Retire(
		c.Request.Context(),
		c.Param("email"),
		c.Param("effectiveFrom"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Exists(c *gin.Context) {
	exists, err := h.service.Exists(
		c.Request.Context(),
		c.Param("email"),
		c.Param("effectiveFrom"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ExistsResponse{Exists: exists}, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	resp, err := h.service.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}
	response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
}
