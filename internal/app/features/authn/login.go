// internal/app/features/authn/login.go
package authn

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/app/system/ratelimit"
)

// HandleLogin handles POST /auth/login.
//
// The same "invalid email or password" message is returned for unknown
// accounts and wrong passwords so the endpoint does not leak which
// emails exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.Log.Warn("login rate limit exceeded", zap.String("ip", ip))
		httpjson.Error(w, http.StatusTooManyRequests, "too many login attempts; try again later")
		return
	}

	var p loginPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := normalize.Email(p.Email)

	var (
		user auth.TokenUser
		hash string
		err  error
	)
	switch p.Role {
	case auth.RoleStudent:
		s, lookupErr := h.Students.GetByEmail(r.Context(), email)
		err = lookupErr
		if err == nil {
			hash = s.PasswordHash
			user = auth.TokenUser{ID: s.ID.Hex(), Name: s.FullName, Email: s.Email, Role: auth.RoleStudent}
		}
	case auth.RoleSupervisor:
		s, lookupErr := h.Supervisors.GetByEmail(r.Context(), email)
		err = lookupErr
		if err == nil {
			hash = s.PasswordHash
			user = auth.TokenUser{ID: s.ID.Hex(), Name: s.FullName, Email: s.Email, Role: auth.RoleSupervisor}
		}
	case auth.RoleAdmin:
		a, lookupErr := h.Admins.GetByEmail(r.Context(), email)
		err = lookupErr
		if err == nil {
			hash = a.PasswordHash
			user = auth.TokenUser{
				ID:              a.ID.Hex(),
				Name:            a.FullName,
				Email:           a.Email,
				Role:            auth.RoleAdmin,
				SuperAdmin:      a.SuperAdmin,
				WritePermission: a.WritePermission,
			}
		}
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.String("role", p.Role), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(p.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	h.Tokens.SetCookie(w, token)
	h.Limiter.Reset(ip)

	h.Log.Info("user logged in",
		zap.String("role", user.Role),
		zap.String("user_id", user.ID))

	httpjson.OK(w, identityResponse{
		Success:         true,
		ID:              user.ID,
		FullName:        user.Name,
		Email:           user.Email,
		Role:            user.Role,
		SuperAdmin:      user.SuperAdmin,
		WritePermission: user.WritePermission,
	})
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Tokens.ClearCookie(w)
	httpjson.Message(w, http.StatusOK, "logged out")
}

// HandleMe handles GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}
	httpjson.OK(w, identityResponse{
		Success:         true,
		ID:              u.ID,
		FullName:        u.Name,
		Email:           u.Email,
		Role:            u.Role,
		SuperAdmin:      u.SuperAdmin,
		WritePermission: u.WritePermission,
	})
}
