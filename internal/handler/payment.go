package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
	"github.com/iliyamo/event-hotel-reservation/internal/queue"
	"github.com/iliyamo/event-hotel-reservation/internal/repository"
)

// PaymentHandler records ticket payments and serves payment lookups.
type PaymentHandler struct {
	Tickets  TicketStore
	Payments PaymentStore
	Events   EventPublisher // optional; nil disables publishing
}

func NewPaymentHandler(t TicketStore, p PaymentStore, ev EventPublisher) *PaymentHandler {
	return &PaymentHandler{Tickets: t, Payments: p, Events: ev}
}

// cardData carries the card details for a payment. The processor is
// simulated, so the fields are validated for shape only and never stored
// beyond issuer and last digits.
type cardData struct {
	Issuer         string `json:"issuer"`
	Number         int64  `json:"number"`
	Name           string `json:"name"`
	ExpirationDate string `json:"expiration_date"`
	CVV            int    `json:"cvv"`
}

type processPaymentReq struct {
	TicketID uint64   `json:"ticket_id"`
	CardData cardData `json:"card_data"`
}

// validateTicket loads the ticket and confirms the caller owns it. Order
// matters: an absent ticket is 404 before ownership is ever considered.
func (h *PaymentHandler) validateTicket(ctx context.Context, ticketID, userID uint64) (model.Ticket, error) {
	ticket, err := h.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return model.Ticket{}, err
	}
	owner, err := h.Tickets.OwnerUserID(ctx, ticketID)
	if err != nil {
		return model.Ticket{}, err
	}
	if owner != userID {
		return model.Ticket{}, echo.ErrUnauthorized
	}
	return ticket, nil
}

func paymentTicketError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case errors.Is(err, echo.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "ticket belongs to another user"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// GetPayment handles GET /v1/payments?ticketId=N. A ticket with no payment
// yet answers 200 with a JSON null body, distinguishing "not paid" from
// "ticket does not exist".
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	raw := c.QueryParam("ticketId")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticketId query param required"})
	}
	ticketID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticketId"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.validateTicket(ctx, ticketID, userID); err != nil {
		return paymentTicketError(c, err)
	}
	payment, err := h.Payments.GetByTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, payment)
}

// ProcessPayment handles POST /v1/payments/process. It records the payment
// at the ticket type's price, flips the ticket to PAID, and publishes a
// ticket.paid event.
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TicketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_id required"})
	}
	card := req.CardData
	if strings.TrimSpace(card.Issuer) == "" || card.Number <= 0 ||
		len(strings.TrimSpace(card.Name)) < 3 || strings.TrimSpace(card.ExpirationDate) == "" || card.CVV <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid card data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ticket, err := h.validateTicket(ctx, req.TicketID, userID)
	if err != nil {
		return paymentTicketError(c, err)
	}

	payment, err := h.Payments.Create(ctx, model.Payment{
		TicketID:       ticket.ID,
		Value:          ticket.TicketType.Price,
		CardIssuer:     card.Issuer,
		CardLastDigits: lastFourDigits(card.Number),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	if err := h.Tickets.MarkPaid(ctx, ticket.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update ticket failed"})
	}

	h.publishPaid(c.Request().Context(), ticket, userID, payment)
	return c.JSON(http.StatusOK, payment)
}

// lastFourDigits keeps only the trailing four digits of a card number.
// Shorter numbers are kept whole.
func lastFourDigits(number int64) string {
	s := strconv.FormatInt(number, 10)
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

func (h *PaymentHandler) publishPaid(ctx context.Context, ticket model.Ticket, userID uint64, payment model.Payment) {
	if h.Events == nil {
		return
	}
	ev := queue.TicketPaidEvent{
		TicketID:    ticket.ID,
		UserID:      userID,
		TicketType:  ticket.TicketType.Name,
		AmountCents: payment.Value,
		CardIssuer:  payment.CardIssuer,
		PaidAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func(ctx context.Context) {
		_ = h.Events.PublishTicketPaid(ctx, ev)
	}(context.WithoutCancel(ctx))
}
