package devserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoteldesk/go-hotel-client/core"
)

const userKey = "user"

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "username and password required", fieldErrors(err))
		return
	}
	hash, ok := s.cfg.Users[strings.TrimSpace(payload.Username)]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(payload.Password)) != nil {
		s.logger.Info("login rejected", zap.String("username", payload.Username))
		abortWithError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	token, expiresAt, err := s.IssueToken(payload.Username)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to issue token", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt})
}

// IssueToken signs an HS256 token for username valid for the configured TTL.
func (s *Server) IssueToken(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenTTL).Truncate(time.Second)
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	return token, expiresAt, err
}

// requireToken rejects requests without a valid bearer token.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := s.authenticate(c.GetHeader(core.HeaderAuthorization))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		c.Set(userKey, username)
		c.Next()
	}
}

func (s *Server) authenticate(header string) (string, error) {
	scheme, tokenStr, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, core.AuthTypeBearer) || tokenStr == "" {
		return "", jwt.ErrTokenMalformed
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	if _, known := s.cfg.Users[sub]; !known {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}
