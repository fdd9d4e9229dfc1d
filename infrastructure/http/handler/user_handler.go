package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/infrastructure/service/password"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type UserHandler struct {
	users     outbound.UserRepository
	passwords password.Service
	log       logger.Logger
}

func NewUserHandler(users outbound.UserRepository, passwords password.Service, log logger.Logger) *UserHandler {
	return &UserHandler{users: users, passwords: passwords, log: log}
}

func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.List).Methods(http.MethodGet)
	r.HandleFunc("/users", h.DeleteMany).Methods(http.MethodDelete).Queries("ids", "{ids}")
	r.HandleFunc("/users/drivers-trips", h.DriversTrips).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p := pagination.FromQuery(query)

	var filter outbound.UserFilter
	if raw := query.Get("role"); raw != "" {
		role := entity.UserRole(strings.ToUpper(raw))
		if !role.IsValid() {
			response.UnprocessableEntity(w, "Invalid role")
			return
		}
		filter.Role = role
	}

	users, total, err := h.users.FindAll(r.Context(), filter, p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	response.ListOK(w, p.Meta(total), users)
}

// DriversTrips serves the per-driver trip report for a closed date window.
// Both bounds are required.
func (h *UserHandler) DriversTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, ok := validator.ParseDate(query.Get("startingDate"))
	if !ok {
		response.UnprocessableEntity(w, "Valid starting date is required")
		return
	}
	end, ok := validator.ParseDate(query.Get("endingDate"))
	if !ok {
		response.UnprocessableEntity(w, "Valid ending date is required")
		return
	}
	if end.Before(start) {
		response.UnprocessableEntity(w, "Ending date must be after starting date")
		return
	}

	drivers, err := h.users.FindDriversWithTrips(r.Context(), start, end)
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	response.JSON(w, http.StatusOK, drivers)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name      *string          `json:"name"`
	Email     *string          `json:"email"`
	Password  *string          `json:"password"`
	Role      *entity.UserRole `json:"role"`
	Matricule *string          `json:"matricule"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}

	if req.Name != nil {
		if !validator.ValidateRequired(*req.Name) {
			response.UnprocessableEntity(w, "Name cannot be empty")
			return
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		if !validator.ValidateEmail(*req.Email) {
			response.UnprocessableEntity(w, "Invalid email address")
			return
		}
		if *req.Email != user.Email {
			exists, err := h.users.ExistsByEmail(r.Context(), *req.Email)
			if err != nil {
				writeRepoError(w, h.log, entity.KindUser, err)
				return
			}
			if exists {
				response.Conflict(w, "Email already in use")
				return
			}
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if !validator.ValidatePassword(*req.Password) {
			response.UnprocessableEntity(w, "Password must be at least 8 characters")
			return
		}
		hashed, err := h.passwords.Hash(*req.Password)
		if err != nil {
			h.log.Error("failed to hash password", err, nil)
			response.InternalServerError(w, "Internal server error")
			return
		}
		user.Password = hashed
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			response.UnprocessableEntity(w, "Invalid role")
			return
		}
		user.Role = *req.Role
	}
	if req.Matricule != nil {
		user.Matricule = *req.Matricule
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		if errors.Is(err, outbound.ErrEmailExists) {
			response.Conflict(w, "Email already in use")
			return
		}
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	response.Deleted(w, entity.KindUser.Label())
}

// DeleteMany soft-deletes a comma separated batch, e.g. DELETE /users?ids=a,b.
// Already-deleted and unknown ids are skipped; the count reflects rows
// actually touched.
func (h *UserHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		response.BadRequest(w, "No user ids provided")
		return
	}

	affected, err := h.users.SoftDeleteMany(r.Context(), ids)
	if err != nil {
		writeRepoError(w, h.log, entity.KindUser, err)
		return
	}
	if affected == 0 {
		response.Message(w, http.StatusNotFound, "No valid users found")
		return
	}
	response.Message(w, http.StatusOK, fmt.Sprintf("%d users deleted", affected))
}
