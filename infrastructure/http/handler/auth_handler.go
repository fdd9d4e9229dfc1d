package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/jwt"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/infrastructure/service/password"
	"github.com/fleetora/fleetora/infrastructure/service/ratelimit"
)

type AuthHandler struct {
	users     outbound.UserRepository
	passwords password.Service
	tokens    *jwt.Service
	limiter   ratelimit.Limiter
	log       logger.Logger
}

func NewAuthHandler(
	users outbound.UserRepository,
	passwords password.Service,
	tokens *jwt.Service,
	limiter ratelimit.Limiter,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		limiter:   limiter,
		log:       log,
	}
}

func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
}

type authResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	allowed, err := h.limiter.Allow(r.Context(), clientIP(r))
	if err != nil {
		h.log.Error("rate limiter unavailable", err, nil)
		response.InternalServerError(w, "Internal server error")
		return
	}
	if !allowed {
		response.TooManyRequests(w, "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateEmail(req.Email) || req.Password == "" {
		response.UnprocessableEntity(w, "Email and password are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	if err := h.passwords.Compare(user.Password, req.Password); err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.log.Error("failed to generate token", err, logger.Fields{"user_id": user.ID})
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.JSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

type registerRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Role      entity.UserRole `json:"role"`
	Matricule string          `json:"matricule"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Name is required")
		return
	}
	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email address")
		return
	}
	if !validator.ValidatePassword(req.Password) {
		response.UnprocessableEntity(w, "Password must be at least 8 characters")
		return
	}
	if !req.Role.IsValid() {
		response.UnprocessableEntity(w, "Invalid role")
		return
	}

	exists, err := h.users.ExistsByEmail(r.Context(), req.Email)
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	if exists {
		response.Conflict(w, "Email already in use")
		return
	}

	hashed, err := h.passwords.Hash(req.Password)
	if err != nil {
		h.log.Error("failed to hash password", err, nil)
		response.InternalServerError(w, "Internal server error")
		return
	}

	user := entity.NewUser(uuid.New().String(), req.Name, req.Email, hashed, req.Matricule, req.Role)
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, outbound.ErrEmailExists) {
			response.Conflict(w, "Email already in use")
			return
		}
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.log.Error("failed to generate token", err, logger.Fields{"user_id": user.ID})
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.JSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// clientIP keys the login limiter. X-Forwarded-For wins over the socket
// address so limits survive a reverse proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
