package webserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-jwt-secret")

type fakeUsers struct {
	ByIDFunc       func(ctx context.Context, id uint64) (*types.User, error)
	ByUsernameFunc func(ctx context.Context, username string) (*types.User, error)
	ByGoogleIDFunc func(ctx context.Context, googleID string) (*types.User, error)
	CreateFunc     func(ctx context.Context, u *types.User) error
}

func (f *fakeUsers) ByID(ctx context.Context, id uint64) (*types.User, error) {
	return f.ByIDFunc(ctx, id)
}

func (f *fakeUsers) ByUsername(ctx context.Context, username string) (*types.User, error) {
	return f.ByUsernameFunc(ctx, username)
}

func (f *fakeUsers) ByGoogleID(ctx context.Context, googleID string) (*types.User, error) {
	return f.ByGoogleIDFunc(ctx, googleID)
}

func (f *fakeUsers) Create(ctx context.Context, u *types.User) error {
	return f.CreateFunc(ctx, u)
}

type fakeKeyStore struct {
	ListFunc   func(ctx context.Context, userID uint64) ([]types.APIKey, error)
	GetFunc    func(ctx context.Context, userID uint64, provider string) (*types.APIKey, error)
	CreateFunc func(ctx context.Context, userID uint64, provider, secret string) (*types.APIKey, error)
	DeleteFunc func(ctx context.Context, userID, id uint64) error
}

func (f *fakeKeyStore) List(ctx context.Context, userID uint64) ([]types.APIKey, error) {
	return f.ListFunc(ctx, userID)
}

func (f *fakeKeyStore) Get(ctx context.Context, userID uint64, provider string) (*types.APIKey, error) {
	return f.GetFunc(ctx, userID, provider)
}

func (f *fakeKeyStore) Create(ctx context.Context, userID uint64, provider, secret string) (*types.APIKey, error) {
	return f.CreateFunc(ctx, userID, provider, secret)
}

func (f *fakeKeyStore) Delete(ctx context.Context, userID, id uint64) error {
	return f.DeleteFunc(ctx, userID, id)
}

type fakeContentStore struct {
	items []types.ContentItem
}

func (f *fakeContentStore) Create(ctx context.Context, item *types.ContentItem) error {
	item.ID = uint64(len(f.items) + 1)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeContentStore) ListByUser(ctx context.Context, userID uint64) ([]types.ContentItem, error) {
	var out []types.ContentItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	GenerateFunc func(ctx context.Context, userID uint64, prompt, model string) (*types.ContentItem, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, userID uint64, prompt, model string) (*types.ContentItem, error) {
	return f.GenerateFunc(ctx, userID, prompt, model)
}

type fakePoster struct {
	PostFunc func(ctx context.Context, platform, content string) error
}

func (f *fakePoster) Post(ctx context.Context, platform, content string) error {
	return f.PostFunc(ctx, platform, content)
}

// memSessions is an in-process SessionStore standing in for Redis.
type memSessions struct {
	sessions map[string]uint64
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]uint64{}}
}

func (m *memSessions) Put(ctx context.Context, jti string, userID uint64, ttl time.Duration) error {
	m.sessions[jti] = userID
	return nil
}

func (m *memSessions) Get(ctx context.Context, jti string) (uint64, error) {
	id, ok := m.sessions[jti]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

func (m *memSessions) Delete(ctx context.Context, jti string) error {
	delete(m.sessions, jti)
	return nil
}

// login mints a live token for userID directly against the store.
func login(t *testing.T, sessions *memSessions, userID uint64) string {
	t.Helper()
	token, jti, err := issueJWT(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issueJWT: %v", err)
	}
	sessions.sessions[jti] = userID
	return token
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
