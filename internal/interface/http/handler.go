package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// legacyChatRequest is the body accepted by the original chat endpoint.
type legacyChatRequest struct {
	UserMessage *string `json:"user_message"`
}

type legacyChatResponse struct {
	Response string `json:"response"`
}

// Chat answers a message on the /chat route. The reply is always 200; failures are folded into it.
func (h *Handler) Chat(c *gin.Context) {
	var req legacyChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.UserMessage == nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "user_message is required", nil))
		return
	}

	reply := h.faqSvc.Resolve(c.Request.Context(), *req.UserMessage)
	c.JSON(http.StatusOK, legacyChatResponse{Response: reply})
}

// Answer returns the reply together with how it was produced.
func (h *Handler) Answer(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "message cannot be empty", nil))
		return
	}

	c.JSON(http.StatusOK, h.faqSvc.Answer(c.Request.Context(), req))
}

// TrendingFAQ returns the most common questions.
func (h *Handler) TrendingFAQ(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "faq_failed", errMessage(err), err))
		return
	}
	if items == nil {
		items = []faq.TrendingQuery{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
