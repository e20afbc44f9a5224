package handlers

import (
	"net/http"

	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *middleware.Authenticator
}

func NewAuthHandler(auth *services.AuthService, tokens *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		tokens: tokens,
	}
}

type authResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.Expiration().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, status, authResponse{Token: token, User: user.Summary()})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUserFromContext(r.Context()))
}
