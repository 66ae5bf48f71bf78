package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/draftforge/draftforge/src/api/data"
	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
	"github.com/draftforge/draftforge/src/webclient"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// GoogleAuth implements the federated-identity handoff. It resolves to the
// same User shape as password login, distinguished by an empty password.
type GoogleAuth struct {
	auth Auth
	rdb  *redis.Client

	clientID     string
	clientSecret string
	redirectURL  string

	httpClient *http.Client
	tokenURL   string
	userinfo   string
}

func NewGoogleAuth(auth Auth, rdb *redis.Client, clientID, clientSecret, redirectURL string) GoogleAuth {
	return GoogleAuth{
		auth:         auth,
		rdb:          rdb,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		httpClient:   webclient.NewDefault(30 * time.Second),
		tokenURL:     googleTokenURL,
		userinfo:     googleUserinfoURL,
	}
}

func (g GoogleAuth) Login(c *gin.Context) {
	if g.clientID == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"message": "google login not configured"})
		return
	}
	state := uuid.NewString()
	if err := data.SetOAuthState(c.Request.Context(), g.rdb, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	q := url.Values{}
	q.Set("client_id", g.clientID)
	q.Set("redirect_uri", g.redirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	c.Redirect(http.StatusFound, googleAuthURL+"?"+q.Encode())
}

func (g GoogleAuth) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing state or code"})
		return
	}
	if err := data.TakeOAuthState(c.Request.Context(), g.rdb, state); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "state expired"})
		return
	}

	info, err := g.fetchIdentity(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
		return
	}

	user, err := g.findOrCreateUser(c.Request.Context(), info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if _, err := g.auth.issueSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

type googleIdentity struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (g GoogleAuth) fetchIdentity(ctx context.Context, code string) (*googleIdentity, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("redirect_uri", g.redirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google token exchange failed: %s", string(body))
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("google token exchange returned no access token")
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, g.userinfo, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err = g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo failed: %s", string(body))
	}
	var info googleIdentity
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("google userinfo returned no subject")
	}
	return &info, nil
}

func (g GoogleAuth) findOrCreateUser(ctx context.Context, info *googleIdentity) (*types.User, error) {
	user, err := g.auth.users.ByGoogleID(ctx, info.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	username := info.Email
	if username == "" {
		username = info.Name
	}
	// Username collisions get a short random suffix; the Google subject
	// stays the stable identity.
	if _, err := g.auth.users.ByUsername(ctx, username); err == nil {
		username = fmt.Sprintf("%s-%s", username, uuid.NewString()[:8])
	}

	user = &types.User{
		Username: username,
		Email:    info.Email,
		GoogleID: info.Sub,
	}
	if err := g.auth.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
