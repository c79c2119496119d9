package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

const minPasswordLen = 5

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, filter map[string]string) ([]models.User, error)
}

// Handler holds user-facing HTTP handlers.
type Handler struct {
	users UserStore
}

func NewHandler(users UserStore) *Handler {
	return &Handler{users: users}
}

// authResponse is the only place the access token leaves the API.
type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Signup creates a new user. The password is validated before anything is
// persisted; usernames are stored lowercase.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" {
		common.RespondWithError(w, fmt.Errorf("username is required: %w", common.ErrInvalidInput))
		return
	}
	if len(req.Password) < minPasswordLen {
		common.RespondWithError(w, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, common.ErrInvalidInput))
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	token, err := GenerateToken()
	if err != nil {
		common.RespondWithError(w, err)
		return
	}

	user := &models.User{Username: req.Username, Password: hashed, Token: token}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		common.RespondWithError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, authResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Token:    user.Token,
	})
}

// Signin verifies credentials and returns the token issued at signup.
// Unknown username and wrong password are indistinguishable: both 404.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, fmt.Errorf("invalid request body: %w", common.ErrInvalidInput))
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	if user == nil || !VerifyPassword(req.Password, user.Password) {
		common.RespondWithError(w, fmt.Errorf("invalid username or password: %w", common.ErrNotFound))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, authResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Token:    user.Token,
	})
}

// GetUser returns a single user by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

// ListUsers returns users matching the query parameters. An empty result
// is still a success: 200 with an empty array.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), common.FilterFromQuery(r.URL.Query()))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
