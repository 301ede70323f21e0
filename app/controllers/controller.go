// Package controllers holds the HTTP handlers. Each handler binds the
// request into a typed input, calls one service operation, and translates
// the outcome into the JSON envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/router"
)

// pathID parses the {id} URL parameter. A malformed id is reported as 404:
// no resource can live at that path.
func pathID(r *http.Request) (uint, bool) {
	raw := router.Param(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// internalError logs the cause and answers with a generic 500; internal
// detail never reaches the client.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.WithCtx(r.Context()).Error(op, "error", err)
	response.Internal(w)
}
