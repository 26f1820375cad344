package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfcastro/contas/internal/adapter/http/dto"
	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

// ItemService defines the behavior needed by ItemHandler.
type ItemService interface {
	AddItem(ctx context.Context, input usecase.AddItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, input usecase.UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemUC ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemUC ItemService) *ItemHandler {
	return &ItemHandler{itemUC: itemUC}
}

// Create adds an item to the account in the URL.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.itemUC.AddItem(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add item", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ItemFromDomain(item))
}

// Update edits an item's name, quantity, price, or notes.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	var req dto.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.itemUC.UpdateItem(r.Context(), req.ToUseCaseInput(itemID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemFromDomain(item))
}

// Delete removes an item from its account.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	if err := h.itemUC.DeleteItem(r.Context(), itemID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete item", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
