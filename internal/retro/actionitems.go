package retro

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

// CreateActionItem attaches a new action item to the retro named in the URL.
func (h *Handler) CreateActionItem(w http.ResponseWriter, r *http.Request) {
	retroID := chi.URLParam(r, "retroId")
	parent, err := h.retros.GetRetro(r.Context(), retroID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = fmt.Errorf("retro %s not found: %w", retroID, common.ErrInvalidInput)
		}
		common.RespondWithError(w, err)
		return
	}

	var req models.CreateActionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}

	item := &models.ActionItem{
		Description: req.Description,
		Name:        req.Name,
		Retro:       parent.ID,
	}
	if err := h.items.InsertActionItem(r.Context(), item); err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, item)
}

// GetActionItem returns a single action item by id.
func (h *Handler) GetActionItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.GetActionItem(r.Context(), chi.URLParam(r, "actionId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, item)
}

// UpdateActionItem overwrites the fields present in the body and returns
// the post-update document.
func (h *Handler) UpdateActionItem(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}
	item, err := h.items.UpdateActionItem(r.Context(), chi.URLParam(r, "actionId"), fields)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, item)
}

// DeleteActionItem removes an action item and returns the deleted document.
func (h *Handler) DeleteActionItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.DeleteActionItem(r.Context(), chi.URLParam(r, "actionId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, item)
}

// ListActionItems returns action items matching the query parameters.
func (h *Handler) ListActionItems(w http.ResponseWriter, r *http.Request) {
	h.respondActionItems(w, r, common.FilterFromQuery(r.URL.Query()))
}

// ListRetroActionItems returns the action items of one retro, including
// items orphaned by a retro deletion.
func (h *Handler) ListRetroActionItems(w http.ResponseWriter, r *http.Request) {
	h.respondActionItems(w, r, map[string]string{"retro": chi.URLParam(r, "retroId")})
}

func (h *Handler) respondActionItems(w http.ResponseWriter, r *http.Request, filter map[string]string) {
	items, err := h.items.ListActionItems(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	if items == nil {
		items = []models.ActionItem{}
	}
	common.RespondWithJSON(w, http.StatusOK, items)
}
