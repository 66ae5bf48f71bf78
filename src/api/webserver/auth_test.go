package webserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
)

func memUsers() *fakeUsers {
	byID := map[uint64]*types.User{}
	byName := map[string]*types.User{}
	nextID := uint64(0)
	return &fakeUsers{
		ByIDFunc: func(ctx context.Context, id uint64) (*types.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return u, nil
		},
		ByUsernameFunc: func(ctx context.Context, username string) (*types.User, error) {
			u, ok := byName[username]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return u, nil
		},
		ByGoogleIDFunc: func(ctx context.Context, googleID string) (*types.User, error) {
			return nil, storage.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, u *types.User) error {
			nextID++
			u.ID = nextID
			byID[u.ID] = u
			byName[u.Username] = u
			return nil
		},
	}
}

func authRouter(users storage.Users, sessions SessionStore) *gin.Engine {
	r := gin.New()
	h := NewAuth(users, sessions, testSecret, time.Hour)
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	secured := r.Group("", SessionMiddleware(testSecret, sessions))
	secured.POST("/api/logout", h.Logout)
	secured.GET("/api/user", h.Me)
	return r
}

func TestRegisterLoginFlow(t *testing.T) {
	users := memUsers()
	sessions := newMemSessions()
	r := authRouter(users, sessions)

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter2hunter2",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}
	user, _ := body["user"].(map[string]interface{})
	if _, leaked := user["password"]; leaked {
		t.Error("password hash leaked in register response")
	}

	// Fresh token is immediately usable.
	w = doJSON(t, r, http.MethodGet, "/api/user", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("user status = %d, body %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["username"]; got != "alice" {
		t.Errorf("username = %v", got)
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "hunter2hunter2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := memUsers()
	r := authRouter(users, newMemSessions())

	payload := gin.H{"username": "bob", "email": "bob@example.com", "password": "longenough"}
	if w := doJSON(t, r, http.MethodPost, "/api/register", "", payload); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/register", "", payload); w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := authRouter(memUsers(), newMemSessions())

	cases := []gin.H{
		{"username": "x", "email": "not-an-email", "password": "longenough"},
		{"username": "x", "email": "x@example.com", "password": "short"},
		{"email": "x@example.com", "password": "longenough"},
	}
	for _, payload := range cases {
		if w := doJSON(t, r, http.MethodPost, "/api/register", "", payload); w.Code != http.StatusBadRequest {
			t.Errorf("register(%v) status = %d, want 400", payload, w.Code)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := memUsers()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	_ = users.CreateFunc(context.Background(), &types.User{
		Username: "carol", Email: "carol@example.com", Password: string(hash),
	})
	// Federated account with no local password.
	_ = users.CreateFunc(context.Background(), &types.User{
		Username: "dave", Email: "dave@example.com", GoogleID: "g-123",
	})
	r := authRouter(users, newMemSessions())

	cases := []gin.H{
		{"username": "carol", "password": "wrong"},
		{"username": "nobody", "password": "whatever"},
		{"username": "dave", "password": "anything"},
	}
	for _, payload := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/login", "", payload)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("login(%v) status = %d, want 401", payload, w.Code)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	users := memUsers()
	_ = users.CreateFunc(context.Background(), &types.User{Username: "erin", Email: "e@example.com"})
	sessions := newMemSessions()
	token := login(t, sessions, 1)
	r := authRouter(users, sessions)

	if w := doJSON(t, r, http.MethodPost, "/api/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	// The same token no longer resolves a session.
	if w := doJSON(t, r, http.MethodGet, "/api/user", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("post-logout status = %d, want 401", w.Code)
	}
}
