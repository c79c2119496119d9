package retro

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo store, mirroring its
// error contract (ErrNotFound / ErrInvalidInput wrapping, category check
// at insert).
type fakeStore struct {
	users    map[primitive.ObjectID]*models.User
	retros   map[primitive.ObjectID]*models.Retro
	thoughts map[primitive.ObjectID]*models.Thought
	items    map[primitive.ObjectID]*models.ActionItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[primitive.ObjectID]*models.User),
		retros:   make(map[primitive.ObjectID]*models.Retro),
		thoughts: make(map[primitive.ObjectID]*models.Thought),
		items:    make(map[primitive.ObjectID]*models.ActionItem),
	}
}

func (f *fakeStore) addUser(username string) *models.User {
	u := &models.User{ID: primitive.NewObjectID(), Username: username}
	f.users[u.ID] = u
	return u
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed id %q: %w", id, common.ErrInvalidInput)
	}
	return oid, nil
}

// ── UserResolver ──────────────────────────────────────────

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if u, ok := f.users[oid]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
}

func (f *fakeStore) GetUsersByUsernames(_ context.Context, usernames []string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		for _, name := range usernames {
			if u.Username == name {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ── RetroStore ────────────────────────────────────────────

func (f *fakeStore) InsertRetro(_ context.Context, retro *models.Retro) error {
	retro.ID = primitive.NewObjectID()
	stored := *retro
	f.retros[retro.ID] = &stored
	return nil
}

func (f *fakeStore) GetRetro(_ context.Context, id string) (*models.Retro, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if r, ok := f.retros[oid]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
}

func (f *fakeStore) UpdateRetro(_ context.Context, id string, fields map[string]interface{}) (*models.Retro, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, ok := f.retros[oid]
	if !ok {
		return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
	}
	// id fields are stripped and an empty body is a no-op read, matching
	// the Mongo store.
	delete(fields, "_id")
	delete(fields, "id")
	if v, ok := fields["description"].(string); ok {
		r.Description = v
	}
	if v, ok := fields["active"].(bool); ok {
		r.Active = v
	}
	return r, nil
}

func (f *fakeStore) DeleteRetro(_ context.Context, id string) (*models.Retro, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, ok := f.retros[oid]
	if !ok {
		return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
	}
	delete(f.retros, oid)
	return r, nil
}

func (f *fakeStore) ListRetros(_ context.Context, filter map[string]string) ([]models.Retro, error) {
	var out []models.Retro
	for _, r := range f.retros {
		if want, ok := filter["description"]; ok && r.Description != want {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) ListRetrosForUser(_ context.Context, userID string) ([]models.Retro, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	var out []models.Retro
	for _, r := range f.retros {
		if r.Admin == oid {
			out = append(out, *r)
			continue
		}
		for _, p := range r.Participants {
			if p == oid {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

// ── ThoughtStore ──────────────────────────────────────────

func (f *fakeStore) InsertThought(_ context.Context, thought *models.Thought) error {
	if !models.ValidCategory(thought.Category) {
		return fmt.Errorf("category %q is not one of Drop, Add, Keep, Improve: %w", thought.Category, common.ErrInvalidInput)
	}
	thought.ID = primitive.NewObjectID()
	stored := *thought
	f.thoughts[thought.ID] = &stored
	return nil
}

func (f *fakeStore) GetThought(_ context.Context, id string) (*models.Thought, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if th, ok := f.thoughts[oid]; ok {
		return th, nil
	}
	return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
}

func (f *fakeStore) UpdateThought(_ context.Context, id string, fields map[string]interface{}) (*models.Thought, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	th, ok := f.thoughts[oid]
	if !ok {
		return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
	}
	delete(fields, "_id")
	delete(fields, "id")
	if v, ok := fields["category"].(string); ok {
		if !models.ValidCategory(v) {
			return nil, fmt.Errorf("category %q is not one of Drop, Add, Keep, Improve: %w", v, common.ErrInvalidInput)
		}
		th.Category = v
	}
	if v, ok := fields["description"].(string); ok {
		th.Description = v
	}
	return th, nil
}

func (f *fakeStore) DeleteThought(_ context.Context, id string) (*models.Thought, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	th, ok := f.thoughts[oid]
	if !ok {
		return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
	}
	delete(f.thoughts, oid)
	return th, nil
}

func (f *fakeStore) ListThoughts(_ context.Context, filter map[string]string) ([]models.Thought, error) {
	var out []models.Thought
	for _, th := range f.thoughts {
		if want, ok := filter["retro"]; ok && th.Retro.Hex() != want {
			continue
		}
		if want, ok := filter["category"]; ok && th.Category != want {
			continue
		}
		out = append(out, *th)
	}
	return out, nil
}

// ── ActionItemStore ───────────────────────────────────────

func (f *fakeStore) InsertActionItem(_ context.Context, item *models.ActionItem) error {
	item.ID = primitive.NewObjectID()
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeStore) GetActionItem(_ context.Context, id string) (*models.ActionItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if it, ok := f.items[oid]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
}

func (f *fakeStore) UpdateActionItem(_ context.Context, id string, fields map[string]interface{}) (*models.ActionItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	it, ok := f.items[oid]
	if !ok {
		return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
	}
	delete(fields, "_id")
	delete(fields, "id")
	if v, ok := fields["description"].(string); ok {
		it.Description = v
	}
	if v, ok := fields["name"].(string); ok {
		it.Name = v
	}
	return it, nil
}

func (f *fakeStore) DeleteActionItem(_ context.Context, id string) (*models.ActionItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	it, ok := f.items[oid]
	if !ok {
		return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
	}
	delete(f.items, oid)
	return it, nil
}

func (f *fakeStore) ListActionItems(_ context.Context, filter map[string]string) ([]models.ActionItem, error) {
	var out []models.ActionItem
	for _, it := range f.items {
		if want, ok := filter["retro"]; ok && it.Retro.Hex() != want {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}
