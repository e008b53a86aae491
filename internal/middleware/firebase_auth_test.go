package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier map[string]*auth.Token

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := s[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("bad token")
}

type memFirebaseUsers struct {
	users  []*models.User
	nextID uint
}

func (m *memFirebaseUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range m.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memFirebaseUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memFirebaseUsers) LinkFirebaseUID(_ context.Context, id uint, uid string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.FirebaseUID = &uid
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (m *memFirebaseUsers) CreateUser(_ context.Context, u *models.User) error {
	m.nextID++
	u.ID = m.nextID
	m.users = append(m.users, u)
	return nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	users := &memFirebaseUsers{nextID: 10}
	existing := &models.User{ID: 3, Email: "ada@example.com"}
	users.users = append(users.users, existing)

	verifier := stubVerifier{
		"linked": {UID: "fb-ada", Claims: map[string]interface{}{"email": "ada@example.com"}},
		"fresh":  {UID: "fb-new", Claims: map[string]interface{}{"email": "grace@example.com", "name": "Grace Brewster Hopper"}},
	}
	mw := FirebaseAuthMiddleware(verifier, users, zap.NewNop())

	code, viewer := runProtected(t, mw, "Bearer linked")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, existing.ID, viewer)
	require.NotNil(t, existing.FirebaseUID)
	assert.Equal(t, "fb-ada", *existing.FirebaseUID)

	code, viewer = runProtected(t, mw, "Bearer fresh")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint(11), viewer)
	created, err := users.GetUserByFirebaseUID(context.Background(), "fb-new")
	require.NoError(t, err)
	assert.Equal(t, "Grace", created.FirstName)
	assert.Equal(t, "Brewster Hopper", created.LastName)

	code, _ = runProtected(t, mw, "Bearer unknown")
	assert.Equal(t, http.StatusUnauthorized, code)
}
