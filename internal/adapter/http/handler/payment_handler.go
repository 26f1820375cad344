package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfcastro/contas/internal/adapter/http/dto"
	"github.com/mfcastro/contas/internal/domain"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	AddPayment(ctx context.Context, accountID string, amount domain.Money) (*domain.Payment, error)
	UpdatePaymentAmount(ctx context.Context, paymentID string, amount domain.Money) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment against the account in the URL.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.AddPayment(r.Context(), accountID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Update corrects a payment's amount.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.UpdatePaymentAmount(r.Context(), paymentID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Delete removes a payment from its account.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	if err := h.paymentUC.DeletePayment(r.Context(), paymentID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete payment", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
