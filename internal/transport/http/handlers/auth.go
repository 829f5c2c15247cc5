package handlers

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/infrastructure/security"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/transport/http/dto"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type AuthHandler struct {
	svc           AuthService
	secureCookies bool
}

func NewAuthHandler(svc AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookies: secureCookies}
}

// Login handles POST /api/auth/login. The token is returned in the body and as the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetSessionCookie(w, sess.Token, sess.ExpiresAt, h.secureCookies)
	response.OK(w, dto.ToSessionView(sess))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	if err := h.svc.Logout(r.Context(), claims.Actor(), claims.TokenID, claims.ExpiresAt); err != nil {
		// the cookie is cleared either way; a denylist failure only leaves the token valid until expiry
		logger.WithCtx(r.Context()).Warn().Err(err).Str("user_id", claims.UserID).Msg("token revoke failed")
	}

	security.ClearSessionCookie(w, h.secureCookies)
	response.OK(w, dto.MessageView{Message: "logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserView(u))
}
