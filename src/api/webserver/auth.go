package webserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
)

type Auth struct {
	users      storage.Users
	sessions   SessionStore
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuth(users storage.Users, sessions SessionStore, secret []byte, ttl time.Duration) Auth {
	return Auth{users: users, sessions: sessions, jwtSecret: secret, sessionTTL: ttl}
}

func (a Auth) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := a.users.ByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "username already taken"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := &types.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := a.users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	token, err := a.issueSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := a.users.ByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	// Federated-only accounts have no password and cannot log in here.
	if user.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	token, err := a.issueSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (a Auth) Logout(c *gin.Context) {
	jti := c.GetString(ctxJTI)
	if jti != "" {
		_ = a.sessions.Delete(c.Request.Context(), jti)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a Auth) Me(c *gin.Context) {
	user, err := a.users.ByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// issueSession mints a JWT, records its jti in the session store, and sets
// the cookie. The token is also returned for bearer-style clients.
func (a Auth) issueSession(c *gin.Context, userID uint64) (string, error) {
	token, jti, err := issueJWT(userID, a.jwtSecret, a.sessionTTL)
	if err != nil {
		return "", err
	}
	if err := a.sessions.Put(c.Request.Context(), jti, userID, a.sessionTTL); err != nil {
		return "", err
	}
	c.SetCookie(sessionCookie, token, int(a.sessionTTL.Seconds()), "/", "", false, true)
	return token, nil
}
