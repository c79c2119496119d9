package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"retroboard/internal/models"
)

type fakeTokenStore struct {
	user *models.User
	err  error
}

func (f *fakeTokenStore) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil && f.user.Token == token {
		return f.user, nil
	}
	return nil, nil
}

func protectedProbe(t *testing.T, store TokenStore) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return RequireToken(store)(next), &seenUserID
}

func TestRequireTokenMissingHeader(t *testing.T) {
	h, _ := protectedProbe(t, &fakeTokenStore{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRequireTokenUnknownToken(t *testing.T) {
	h, _ := protectedProbe(t, &fakeTokenStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "deadbeef")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireTokenValid(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Username: "alice", Token: "cafe01"}
	h, seenUserID := protectedProbe(t, &fakeTokenStore{user: user})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "cafe01")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.Hex(), *seenUserID)
}

func TestRequireTokenStoreFailure(t *testing.T) {
	h, _ := protectedProbe(t, &fakeTokenStore{err: errors.New("connection reset")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "cafe01")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset", "internal errors must not leak")
}
