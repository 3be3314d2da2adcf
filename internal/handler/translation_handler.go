package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/dto"
	"github.com/classconnect/classconnect-api/internal/service"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
	"github.com/classconnect/classconnect-api/pkg/response"
)

type translationService interface {
	Translate(ctx context.Context, req dto.TranslateRequest) (*dto.TranslateResponse, error)
	Reset()
	Status() []service.ProviderStatus
}

// TranslationHandler exposes the translation helper endpoints.
type TranslationHandler struct {
	service translationService
}

// NewTranslationHandler constructs the handler.
func NewTranslationHandler(svc translationService) *TranslationHandler {
	return &TranslationHandler{service: svc}
}

// Translate handles POST /translate-text.
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid translate payload"))
		return
	}

	res, err := h.service.Translate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Reset closes all provider circuit breakers.
func (h *TranslationHandler) Reset(c *gin.Context) {
	h.service.Reset()
	response.NoContent(c)
}

// Status reports per-provider breaker state.
func (h *TranslationHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Status())
}
