package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kingarthur/content-api/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginData struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"   example:"eyJhbGci..."`
	Message string `json:"message" example:"Login successful"`
}

type verifyData struct {
	Valid bool `json:"valid" example:"true"`
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchange the admin password for a bearer token valid 24 hours.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Admin password"
//	@Success		200		{object}	loginData
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Password == "" {
		response.BadRequest(w, "Password is required")
		return
	}

	token, err := h.svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid password")
			return
		}
		response.InternalError(w, "Login failed")
		return
	}

	response.OK(w, loginData{Success: true, Token: token, Message: "Login successful"})
}

// VerifyToken godoc
//
//	@Summary		Verify token
//	@Description	Check whether the presented bearer token is still valid.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	verifyData
//	@Failure		401	{object}	verifyData
//	@Router			/auth/verify [get]
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		response.JSON(w, http.StatusUnauthorized, verifyData{Valid: false})
		return
	}
	if _, err := h.svc.Verify(token); err != nil {
		response.JSON(w, http.StatusUnauthorized, verifyData{Valid: false})
		return
	}
	response.OK(w, verifyData{Valid: true})
}

// BearerToken extracts the token from an Authorization header, returning ""
// when the header is absent or not in Bearer form.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
