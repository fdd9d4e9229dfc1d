package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/http/validator"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type ClientHandler struct {
	clients outbound.ClientRepository
	log     logger.Logger
}

func NewClientHandler(clients outbound.ClientRepository, log logger.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, log: log}
}

func (h *ClientHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/clients", h.List).Methods(http.MethodGet)
	r.HandleFunc("/clients", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/clients/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/clients/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/clients/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromQuery(r.URL.Query())

	clients, total, err := h.clients.FindAll(r.Context(), p)
	if err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}
	response.ListOK(w, p.Meta(total), clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}
	response.JSON(w, http.StatusOK, client)
}

type createClientRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Name is required")
		return
	}

	client := &entity.Client{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
	}
	if err := h.clients.Create(r.Context(), client); err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}
	response.JSON(w, http.StatusCreated, client)
}

type updateClientRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	client, err := h.clients.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}

	if req.Name != nil {
		if !validator.ValidateRequired(*req.Name) {
			response.UnprocessableEntity(w, "Name cannot be empty")
			return
		}
		client.Name = *req.Name
	}
	if req.Contact != nil {
		client.Contact = req.Contact
	}
	if req.Address != nil {
		client.Address = req.Address
	}

	if err := h.clients.Update(r.Context(), client); err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}
	response.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clients.SoftDelete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRepoError(w, h.log, entity.KindClient, err)
		return
	}
	response.Deleted(w, entity.KindClient.Label())
}
