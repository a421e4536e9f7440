// Package handler provides HTTP handlers for the seller assist service.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketx/seller-assist/internal/assist/biz"
	"github.com/marketx/seller-assist/internal/model"
)

// askTimeout bounds classification, retrieval, and completion per question.
const askTimeout = 60 * time.Second

// AssistHandler handles seller assist HTTP requests.
type AssistHandler struct {
	service *biz.AssistService
}

// NewAssistHandler creates a new AssistHandler.
func NewAssistHandler(service *biz.AssistService) *AssistHandler {
	return &AssistHandler{service: service}
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Ask answers a seller question.
func (h *AssistHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), askTimeout)
	defer cancel()

	resp, err := h.service.Ask(ctx, req.Question, req.SellerID)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.JSON(http.StatusRequestTimeout, ErrorResponse{
				Code:    408,
				Message: "Ask timeout: the request took too long to process. Please try again or simplify your question.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: resp})
}

// Ingest loads and indexes the documentation corpus.
func (h *AssistHandler) Ingest(c *gin.Context) {
	// An empty body means a default ingest; all fields are optional.
	var req model.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	result, err := h.service.Ingest(c.Request.Context(), req.Force)
	if err != nil {
		switch {
		case errors.Is(err, biz.ErrDocsNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Code: 404, Message: err.Error()})
		case errors.Is(err, biz.ErrEmptyCorpus):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Code: 422, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: result})
}

// Stats returns index and counter statistics.
func (h *AssistHandler) Stats(c *gin.Context) {
	stats := h.service.Stats(c.Request.Context())
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: stats})
}

// Healthz reports service liveness.
func (h *AssistHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
}
