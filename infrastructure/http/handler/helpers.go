package handler

import (
	"errors"
	"net/http"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/infrastructure/http/response"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
)

// writeRepoError maps data-layer errors onto the response envelope. Misses
// become the per-kind 404 body; anything else is a plain 500, with the
// detail kept in the log rather than the response.
func writeRepoError(w http.ResponseWriter, log logger.Logger, kind entity.Kind, err error) {
	if errors.Is(err, outbound.ErrNotFound) {
		response.NotFound(w, kind.Label())
		return
	}
	log.Error("repository error", err, logger.Fields{"kind": string(kind)})
	response.InternalServerError(w, "Internal server error")
}
