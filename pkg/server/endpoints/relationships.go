package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// RegisterRelationshipsEndpoints registers GET /api/relationships
func RegisterRelationshipsEndpoints(s *server.Server) {
	// GET /api/relationships - List all parent-child links
	s.Router.HandleFunc("/api/relationships", handleListRelationships(s.InventoryStore)).Methods("GET")
}

func handleListRelationships(relationshipsStore store.RelationshipsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rels, err := relationshipsStore.ListRelationships()
		if err != nil {
			respondWithServerError(w, r, "Error fetching relationships", err)
			return
		}
		if rels == nil {
			rels = []store.Relationship{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels})
	}
}
