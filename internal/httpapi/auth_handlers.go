package httpapi

import (
	"net/http"
	"time"

	"github.com/mmynk/nutritrack/internal/jsend"
	"github.com/mmynk/nutritrack/internal/middleware"
	"github.com/mmynk/nutritrack/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	res, err := s.app.Auth.Register(r.Context(), req)
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	s.setSessionCookie(w, res.Token)
	jsend.Created(w, res.User)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	res, err := s.app.Auth.Login(r.Context(), req)
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	s.setSessionCookie(w, res.Token)
	jsend.Success(w, res.User)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Auth.Logout(r.Context(), middleware.TokenFromRequest(r)); err != nil {
		jsend.FromError(w, r, err)
		return
	}
	s.clearSessionCookie(w)
	jsend.Success(w, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.app.Auth.CurrentUser(r.Context(), middleware.GetToken(r.Context()))
	if err != nil {
		jsend.FromError(w, r, err)
		return
	}
	jsend.Success(w, user)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	ttl := s.app.Tokens.TokenDuration()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   s.app.Config.Auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.app.Config.Auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
