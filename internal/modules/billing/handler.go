package billing

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/typeless-cms/core/internal/pkg/response"
)

// maxWebhookBody caps the webhook payload size (64 KiB is far above
// any real Stripe event).
const maxWebhookBody = 64 << 10

type Handler struct {
	svc           *Service
	webhookSecret string
}

func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{svc: svc, webhookSecret: webhookSecret}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/stripe/webhook", h.webhook)
}

func (h *Handler) webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		response.Unauthorized(c, "Invalid webhook signature")
		return
	}

	if err := h.svc.HandleEvent(event); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"received": true})
}
