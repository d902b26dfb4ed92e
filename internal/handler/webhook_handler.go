package handler

import (
	"encoding/json"
	"strings"

	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/logger"
	"lingo-days/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SallaSignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SallaSignatureHeader = "X-Salla-Signature"

// WebhookHandler receives commerce platform events.
type WebhookHandler struct {
	authService service.AuthService
	sallaSecret string
}

func NewWebhookHandler(authService service.AuthService, sallaSecret string) *WebhookHandler {
	return &WebhookHandler{authService: authService, sallaSecret: sallaSecret}
}

// SallaOrder godoc
// @Summary Salla order webhook
// @Description Provisions an account for the order's customer. Replays for a known email answer 200 with created=false.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Salla-Signature header string true "Hex HMAC-SHA256 of the body"
// @Success 201 {object} dto.ProvisionResponse "Account created"
// @Success 200 {object} dto.ProvisionResponse "Account already existed"
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Bad signature"
// @Failure 503 {object} middleware.ErrorResponse "Webhook secret not configured"
// @Router /webhook/salla/order [post]
func (h *WebhookHandler) SallaOrder(c *fiber.Ctx) error {
	body := c.Body()
	if err := service.VerifySallaSignature(h.sallaSecret, body, c.Get(SallaSignatureHeader)); err != nil {
		logger.Get().Warn("Rejected order webhook", zap.String("ip", c.IP()), zap.Error(err))
		return err
	}

	var event dto.SallaOrderWebhook
	if err := json.Unmarshal(body, &event); err != nil {
		return domain.NewInvalidInputError("Invalid webhook payload")
	}

	customer := event.Data.Customer
	email := strings.TrimSpace(customer.Email)
	if email == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("data.customer.email")}
	}
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)

	result, err := h.authService.ProvisionFromOrder(c.UserContext(), email, name)
	if err != nil {
		return err
	}

	logger.Get().Info("Order webhook processed",
		zap.String("event", event.Event),
		zap.Int64("orderID", event.Data.ID),
		zap.String("userID", result.User.ID),
		zap.Bool("created", result.Created))

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.ProvisionResponse{
		Success:           true,
		Created:           result.Created,
		UserID:            result.User.ID,
		Email:             result.User.Email,
		TemporaryPassword: result.TemporaryPassword,
	})
}
