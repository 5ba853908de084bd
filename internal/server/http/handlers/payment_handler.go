package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/server/http/dto"
)

// PaymentHandler manages payment endpoints including the gateway webhook.
type PaymentHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, logger: logger}
}

// Create handles POST /api/create-payment.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var card *model.CardDetails
	if req.CardData != nil {
		card = &model.CardDetails{
			Token:        req.CardData.Token,
			Installments: req.CardData.Installments,
			Network:      req.CardData.PaymentMethodID,
			IssuerID:     req.CardData.IssuerID,
		}
	}

	result, err := h.facade.InitiatePayment(
		c.Request.Context(),
		CurrentUserID(c),
		req.OrderID,
		model.PaymentMethod(req.PaymentMethod),
		card,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{
		PaymentID:     result.Payment.ID,
		TransactionID: result.Payment.TransactionID,
		Status:        result.GatewayStatus,
		StatusDetail:  result.StatusDetail,
		PaymentMethod: string(result.Payment.Method),
		QRCode:        result.QRCode,
		QRCodeBase64:  result.QRCodeBase64,
		TicketURL:     result.TicketURL,
	})
}

// Status handles GET /api/payment-status/:id.
func (h *PaymentHandler) Status(c *gin.Context) {
	view, err := h.facade.PaymentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		Status:        view.GatewayStatus,
		StatusDetail:  view.StatusDetail,
		PaymentMethod: view.MethodID,
		LocalStatus:   string(view.LocalStatus),
	})
}

// Webhook handles POST /api/webhook. The gateway is always acknowledged
// with 200: surfacing an error here would only trigger provider-side
// retry storms. Failures are logged and resolved by the reconciler or
// the next delivery.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("webhook payload unreadable", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if err := h.facade.HandleGatewayNotification(c.Request.Context(), req.Type, req.Data.ID.String()); err != nil {
		h.logger.Error("webhook processing failed",
			slog.String("transaction_id", req.Data.ID.String()),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Methods handles GET /api/payment-methods.
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods, err := h.facade.PaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		response = append(response, dto.PaymentMethodResponse{
			ID:            m.ID,
			Name:          m.Name,
			PaymentTypeID: m.TypeID,
			Thumbnail:     m.Thumbnail,
		})
	}
	c.JSON(http.StatusOK, response)
}
