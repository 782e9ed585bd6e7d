package api

import (
	"log/slog"
	"net/http"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/store"
)

// ItemHandler handles item-related HTTP requests. Items carry no owner, so
// the handler talks to the store directly.
type ItemHandler struct {
	itemStore store.ItemStore
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemStore store.ItemStore, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}
	return &ItemHandler{
		itemStore: itemStore,
		logger:    logger.With(slog.String("component", "item_handler")),
	}
}

// ListItems handles GET /api/items.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// GetItem handles GET /api/items/{id}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	item, err := h.itemStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// CreateItem handles POST /api/items.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	item := &domain.Item{Name: req.Name}
	if err := h.itemStore.Create(r.Context(), item); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("item created", slog.Int64("item_id", item.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, ItemCreatedResponse{
		Message: "New item added.",
		ItemID:  item.ID,
	})
}

// UpdateItem handles PUT /api/items/{id}.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req ItemRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	item, err := h.itemStore.Update(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ItemUpdatedResponse{
		Message: "Item updated.",
		Item:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.itemStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Item deleted."})
}
