// Package response writes the API's JSON shapes: list envelopes with
// pagination metadata, bare items, and {"message": ...} bodies for errors
// and delete acknowledgements.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/fleetora/fleetora/pkg/pagination"
)

// List is the envelope every list endpoint returns. Meta.Total counts the
// full filtered set, independent of the page served.
type List struct {
	Meta pagination.Meta `json:"meta"`
	Data any             `json:"data"`
}

type messageBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func ListOK(w http.ResponseWriter, meta pagination.Meta, data any) {
	JSON(w, http.StatusOK, List{Meta: meta, Data: data})
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, messageBody{Message: message})
}

// NotFound writes the per-kind miss body, e.g. {"message":"Client not found"}.
// It never reveals whether the row was soft-deleted or never existed.
func NotFound(w http.ResponseWriter, kindLabel string) {
	Message(w, http.StatusNotFound, kindLabel+" not found")
}

// Deleted acknowledges a soft delete, e.g. {"message":"Client deleted"}.
func Deleted(w http.ResponseWriter, kindLabel string) {
	Message(w, http.StatusOK, kindLabel+" deleted")
}

func BadRequest(w http.ResponseWriter, message string) {
	Message(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Message(w, http.StatusUnauthorized, message)
}

func UnprocessableEntity(w http.ResponseWriter, message string) {
	Message(w, http.StatusUnprocessableEntity, message)
}

func Conflict(w http.ResponseWriter, message string) {
	Message(w, http.StatusConflict, message)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	Message(w, http.StatusTooManyRequests, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Message(w, http.StatusInternalServerError, message)
}
