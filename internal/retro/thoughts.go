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

// CreateThought attaches a new thought to the retro named in the URL.
// The category enumeration is checked by the store on insert.
func (h *Handler) CreateThought(w http.ResponseWriter, r *http.Request) {
	retroID := chi.URLParam(r, "retroId")
	parent, err := h.retros.GetRetro(r.Context(), retroID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = fmt.Errorf("retro %s not found: %w", retroID, common.ErrInvalidInput)
		}
		common.RespondWithError(w, err)
		return
	}

	var req models.CreateThoughtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}

	thought := &models.Thought{
		Description: req.Description,
		Retro:       parent.ID,
		Category:    req.Category,
	}
	if err := h.thoughts.InsertThought(r.Context(), thought); err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, thought)
}

// GetThought returns a single thought by id.
func (h *Handler) GetThought(w http.ResponseWriter, r *http.Request) {
	thought, err := h.thoughts.GetThought(r.Context(), chi.URLParam(r, "thoughtId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, thought)
}

// UpdateThought overwrites the fields present in the body and returns the
// post-update document.
func (h *Handler) UpdateThought(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}
	thought, err := h.thoughts.UpdateThought(r.Context(), chi.URLParam(r, "thoughtId"), fields)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, thought)
}

// DeleteThought removes a thought and returns the deleted document.
func (h *Handler) DeleteThought(w http.ResponseWriter, r *http.Request) {
	thought, err := h.thoughts.DeleteThought(r.Context(), chi.URLParam(r, "thoughtId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, thought)
}

// ListThoughts returns thoughts matching the query parameters.
func (h *Handler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	h.respondThoughts(w, r, common.FilterFromQuery(r.URL.Query()))
}

// ListRetroThoughts returns the thoughts of one retro. The scope filter is
// applied even when the retro itself no longer exists, so thoughts orphaned
// by a retro deletion stay queryable.
func (h *Handler) ListRetroThoughts(w http.ResponseWriter, r *http.Request) {
	h.respondThoughts(w, r, map[string]string{"retro": chi.URLParam(r, "retroId")})
}

func (h *Handler) respondThoughts(w http.ResponseWriter, r *http.Request, filter map[string]string) {
	thoughts, err := h.thoughts.ListThoughts(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	if thoughts == nil {
		thoughts = []models.Thought{}
	}
	common.RespondWithJSON(w, http.StatusOK, thoughts)
}
