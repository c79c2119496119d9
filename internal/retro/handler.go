package retro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

// RetroStore defines the interface for retro persistence.
type RetroStore interface {
	InsertRetro(ctx context.Context, retro *models.Retro) error
	GetRetro(ctx context.Context, id string) (*models.Retro, error)
	UpdateRetro(ctx context.Context, id string, fields map[string]interface{}) (*models.Retro, error)
	DeleteRetro(ctx context.Context, id string) (*models.Retro, error)
	ListRetros(ctx context.Context, filter map[string]string) ([]models.Retro, error)
	ListRetrosForUser(ctx context.Context, userID string) ([]models.Retro, error)
}

// ThoughtStore defines the interface for thought persistence.
type ThoughtStore interface {
	InsertThought(ctx context.Context, thought *models.Thought) error
	GetThought(ctx context.Context, id string) (*models.Thought, error)
	UpdateThought(ctx context.Context, id string, fields map[string]interface{}) (*models.Thought, error)
	DeleteThought(ctx context.Context, id string) (*models.Thought, error)
	ListThoughts(ctx context.Context, filter map[string]string) ([]models.Thought, error)
}

// ActionItemStore defines the interface for action item persistence.
type ActionItemStore interface {
	InsertActionItem(ctx context.Context, item *models.ActionItem) error
	GetActionItem(ctx context.Context, id string) (*models.ActionItem, error)
	UpdateActionItem(ctx context.Context, id string, fields map[string]interface{}) (*models.ActionItem, error)
	DeleteActionItem(ctx context.Context, id string) (*models.ActionItem, error)
	ListActionItems(ctx context.Context, filter map[string]string) ([]models.ActionItem, error)
}

// UserResolver resolves user references before a retro is constructed and
// populates them on the way out.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

// Handler holds HTTP handlers for retros, thoughts, and action items.
type Handler struct {
	retros   RetroStore
	thoughts ThoughtStore
	items    ActionItemStore
	users    UserResolver
}

func NewHandler(retros RetroStore, thoughts ThoughtStore, items ActionItemStore, users UserResolver) *Handler {
	return &Handler{retros: retros, thoughts: thoughts, items: items, users: users}
}

// retroResponse is a retro with its user references populated.
type retroResponse struct {
	ID           string           `json:"id"`
	Description  string           `json:"description"`
	Admin        *models.UserRef  `json:"admin"`
	Participants []models.UserRef `json:"participants"`
	Active       bool             `json:"active"`
	CreatedAt    int64            `json:"created_at"`
}

// Create builds a retro from resolved user references: the admin id must
// resolve, participant usernames that resolve to nobody are dropped.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRetroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}

	admin, err := h.users.GetUserByID(r.Context(), req.Admin)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = fmt.Errorf("admin user %s not found: %w", req.Admin, common.ErrInvalidInput)
		}
		common.RespondWithError(w, err)
		return
	}

	usernames := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		usernames = append(usernames, strings.ToLower(strings.TrimSpace(p.Text)))
	}
	participants, err := h.users.GetUsersByUsernames(r.Context(), usernames)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	participantIDs := make([]primitive.ObjectID, 0, len(participants))
	for _, p := range participants {
		participantIDs = append(participantIDs, p.ID)
	}

	retro := &models.Retro{
		Description:  req.Description,
		Admin:        admin.ID,
		Participants: participantIDs,
		Active:       req.Active,
		CreatedAt:    time.Now().UnixMilli(),
	}
	if err := h.retros.InsertRetro(r.Context(), retro); err != nil {
		common.RespondWithError(w, err)
		return
	}

	resp, err := h.populate(r.Context(), *retro)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

// Get returns a single retro with populated user references.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	retro, err := h.retros.GetRetro(r.Context(), chi.URLParam(r, "retroId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	resp, err := h.populate(r.Context(), *retro)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// Update overwrites whatever fields are present in the request body and
// returns the post-update document.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}
	retro, err := h.retros.UpdateRetro(r.Context(), chi.URLParam(r, "retroId"), fields)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	resp, err := h.populate(r.Context(), *retro)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// Delete removes a retro and returns the deleted document. Thoughts and
// action items of the retro are not cascade-deleted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	retro, err := h.retros.DeleteRetro(r.Context(), chi.URLParam(r, "retroId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	resp, err := h.populate(r.Context(), *retro)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// List returns retros matching the query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	retros, err := h.retros.ListRetros(r.Context(), common.FilterFromQuery(r.URL.Query()))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	h.respondRetroList(w, r, retros)
}

// ListForUser returns retros the user administers or participates in.
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	retros, err := h.retros.ListRetrosForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	h.respondRetroList(w, r, retros)
}

func (h *Handler) respondRetroList(w http.ResponseWriter, r *http.Request, retros []models.Retro) {
	resp, err := h.populateAll(r.Context(), retros)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// populate resolves a retro's admin and participant references into
// {id, username} projections. Dangling references are skipped.
func (h *Handler) populate(ctx context.Context, retro models.Retro) (retroResponse, error) {
	resps, err := h.populateAll(ctx, []models.Retro{retro})
	if err != nil {
		return retroResponse{}, err
	}
	return resps[0], nil
}

func (h *Handler) populateAll(ctx context.Context, retros []models.Retro) ([]retroResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(retros)*2)
	seen := make(map[primitive.ObjectID]bool)
	for _, retro := range retros {
		for _, id := range append([]primitive.ObjectID{retro.Admin}, retro.Participants...) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	refs := make(map[primitive.ObjectID]models.UserRef)
	if len(ids) > 0 {
		users, err := h.users.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range users {
			refs[users[i].ID] = users[i].Ref()
		}
	}

	resps := make([]retroResponse, 0, len(retros))
	for _, retro := range retros {
		resp := retroResponse{
			ID:           retro.ID.Hex(),
			Description:  retro.Description,
			Participants: []models.UserRef{},
			Active:       retro.Active,
			CreatedAt:    retro.CreatedAt,
		}
		if ref, ok := refs[retro.Admin]; ok {
			resp.Admin = &ref
		}
		for _, pid := range retro.Participants {
			if ref, ok := refs[pid]; ok {
				resp.Participants = append(resp.Participants, ref)
			}
		}
		resps = append(resps, resp)
	}
	return resps, nil
}
