package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Token constants & types                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Roles carried in the token.
const (
	RoleStudent    = "student"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// TokenUser is what we encode in the bearer token & inject into r.Context().
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string

	// Admin-only capability flags, embedded so permission checks stay
	// stateless with the rest of the token.
	SuperAdmin      bool
	WritePermission bool
}

type claims struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	SuperAdmin      bool   `json:"super_admin,omitempty"`
	WritePermission bool   `json:"write_permission,omitempty"`
	jwt.RegisteredClaims
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// WithTestUser injects a user into the request context. Test helper only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| TokenManager                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenManager issues and verifies the stateless bearer tokens the SPA
// carries in a cookie. Tokens are HS256-signed JWTs holding {id, role}
// plus display identity; nothing is stored server-side, so a token stays
// valid until it expires or the signing secret rotates.
type TokenManager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	log        *zap.Logger
}

// NewTokenManager validates the signing secret and builds a TokenManager.
// The `secure` flag controls whether the cookie is marked Secure and which
// SameSite mode is used (None in production for the cross-site SPA, Lax in
// local dev over http://localhost).
func NewTokenManager(secret, cookieName string, ttl time.Duration, secure bool, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if cookieName == "" {
		cookieName = "capstonehub-token"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		log:        logger,
	}, nil
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(u TokenUser) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Name:            u.Name,
		Email:           u.Email,
		Role:            strings.ToLower(u.Role),
		SuperAdmin:      u.SuperAdmin,
		WritePermission: u.WritePermission,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Parse verifies a token string and returns the user it encodes.
func (m *TokenManager) Parse(token string) (*TokenUser, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || c.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return &TokenUser{
		ID:              c.Subject,
		Name:            c.Name,
		Email:           c.Email,
		Role:            c.Role,
		SuperAdmin:      c.SuperAdmin,
		WritePermission: c.WritePermission,
	}, nil
}

// SetCookie writes the token cookie on the response.
func (m *TokenManager) SetCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if m.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// ClearCookie expires the token cookie.
func (m *TokenManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadTokenUser injects the user into context if the request carries a
// valid token, either in the cookie or an Authorization: Bearer header.
// Invalid or expired tokens are treated as anonymous, not as errors;
// RequireSignedIn decides whether anonymity is acceptable.
func (m *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := m.tokenFromRequest(r); tok != "" {
			if u, err := m.Parse(tok); err == nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
// API callers get a plain 401 JSON envelope.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "sign in required")
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. 401 when anonymous, 403 when signed in with the wrong role.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "sign in required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func (m *TokenManager) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// writeJSONError emits the same envelope as system/httpjson.Error.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"success":false,"message":%q}`, msg)
}
