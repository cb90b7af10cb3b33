package endpoints

import (
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterObjectsEndpoints(srv)
	RegisterRelationshipsEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
