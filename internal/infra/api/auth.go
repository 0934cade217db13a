package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"engagesphere/internal/config"
	"engagesphere/internal/domain"
	"engagesphere/internal/infra/logging"
)

// ===== Session/JWT primitives =====

type AuthManager struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
}

func NewAuthManager(cfg config.AuthConfig) *AuthManager {
	return &AuthManager{
		secret:   []byte(cfg.JWTSecret),
		userTTL:  cfg.UserTTL,
		adminTTL: cfg.AdminTTL,
	}
}

type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

func (a *AuthManager) MintUser(userID string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.userTTL)),
			Subject:   userID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthManager) MintAdmin(adminID, email string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.adminTTL)),
			Subject:   adminID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func bearerToken(r *http.Request) (string, bool) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(hdr[7:]), true
}

func (a *AuthManager) ParseUser(tok string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !tkn.Valid || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (a *AuthManager) ParseAdmin(tok string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !tkn.Valid || claims.AdminID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// ===== request identity =====

type identityKey struct{}

// Identity is the authenticated principal attached to the request context.
type Identity struct {
	UserID  string
	AdminID string
	IsAdmin bool
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the request identity, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireAuth accepts either a user or an admin token.
func (a *AuthManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearerToken(r)
		if !ok {
			respond(w, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		if uc, err := a.ParseUser(tok); err == nil {
			ctx := withIdentity(r.Context(), Identity{UserID: uc.UserID})
			ctx = logging.WithUserID(ctx, uc.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		if ac, err := a.ParseAdmin(tok); err == nil {
			ctx := withIdentity(r.Context(), Identity{AdminID: ac.AdminID, IsAdmin: true})
			ctx = logging.WithAdminID(ctx, ac.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		respond(w, http.StatusUnauthorized, "invalid token", nil)
	})
}

// RequireAdmin accepts admin tokens only.
func (a *AuthManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearerToken(r)
		if !ok {
			respond(w, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		ac, err := a.ParseAdmin(tok)
		if err != nil {
			respond(w, http.StatusForbidden, "admin access required", nil)
			return
		}
		ctx := withIdentity(r.Context(), Identity{AdminID: ac.AdminID, IsAdmin: true})
		ctx = logging.WithAdminID(ctx, ac.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
