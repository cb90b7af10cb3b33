package endpoints

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// maxBodyBytes caps add_object request bodies
const maxBodyBytes = 1 << 20

// RegisterObjectsEndpoints registers add_object and the object read routes
func RegisterObjectsEndpoints(s *server.Server) {
	inventoryStore := s.InventoryStore
	service := inventory.NewService(inventoryStore)

	api := s.Router.PathPrefix("/api").Subrouter()

	// POST /api/add_object - Create an object, optionally under a parent
	api.HandleFunc("/add_object", handleAddObject(service)).Methods("POST")

	// GET /api/objects - List all objects
	api.HandleFunc("/objects", handleListObjects(inventoryStore)).Methods("GET")

	// GET /api/objects/{id} - One object with its links
	api.HandleFunc("/objects/{id}", handleFetchObject(inventoryStore)).Methods("GET")

	// GET /api/objects/{id}/descendants - Everything below an object
	api.HandleFunc("/objects/{id}/descendants", handleListDescendants(inventoryStore)).Methods("GET")
}

func handleAddObject(service *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.RequestIDFromContext(r.Context())
		ip := clientIP(r)

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, inventory.ErrInvalidJSON.Error())
			return
		}

		req, err := inventory.ParseRequest(body)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := service.AddObject(req)
		if err != nil {
			audit.Log(audit.ObjectEvent{
				Action:       audit.ActionCreate,
				Serial:       req.Serial,
				Name:         req.Name,
				RequestID:    requestID,
				ClientIP:     ip,
				ErrorMessage: err.Error(),
			})
			if inventory.IsClientError(err) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondWithServerError(w, r, "Error adding object", err)
			return
		}

		audit.Log(audit.ObjectEvent{
			Action:    audit.ActionCreate,
			ObjectID:  result.ID,
			Serial:    req.Serial,
			Name:      req.Name,
			RequestID: requestID,
			ClientIP:  ip,
			Success:   true,
		})
		if result.ParentID != nil {
			audit.Log(audit.RelationshipEvent{
				ParentID:  *result.ParentID,
				ChildID:   result.ID,
				RequestID: requestID,
				ClientIP:  ip,
			})
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Object added successfully.",
			"id":      result.ID,
		})
	}
}

func handleListObjects(objectsStore store.ObjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objects, err := objectsStore.ListObjects()
		if err != nil {
			respondWithServerError(w, r, "Error fetching objects", err)
			return
		}
		if objects == nil {
			objects = []store.Object{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"objects": objects})
	}
}

// ObjectDetail is the response body of GET /api/objects/{id}
type ObjectDetail struct {
	Object    store.Object `json:"object"`
	ParentIDs []int64      `json:"parent_ids"`
	ChildIDs  []int64      `json:"child_ids"`
}

func handleFetchObject(inventoryStore store.InventoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		object, ok := lookupObject(w, r, inventoryStore)
		if !ok {
			return
		}

		parents, err := inventoryStore.ParentIDs(object.ID)
		if err != nil {
			respondWithServerError(w, r, "Error fetching object", err)
			return
		}
		children, err := inventoryStore.ChildIDs(object.ID)
		if err != nil {
			respondWithServerError(w, r, "Error fetching object", err)
			return
		}

		detail := ObjectDetail{Object: *object, ParentIDs: parents, ChildIDs: children}
		if detail.ParentIDs == nil {
			detail.ParentIDs = []int64{}
		}
		if detail.ChildIDs == nil {
			detail.ChildIDs = []int64{}
		}
		respondWithJSON(w, http.StatusOK, detail)
	}
}

func handleListDescendants(objectsStore store.ObjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		object, ok := lookupObject(w, r, objectsStore)
		if !ok {
			return
		}

		descendants, err := objectsStore.ListDescendants(object.ID)
		if err != nil {
			respondWithServerError(w, r, "Error fetching objects", err)
			return
		}
		if descendants == nil {
			descendants = []store.Object{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"objects": descendants})
	}
}

// lookupObject resolves the {id} route variable, answering 400/404/500 itself
func lookupObject(w http.ResponseWriter, r *http.Request, objectsStore store.ObjectsStore) (*store.Object, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid object id")
		return nil, false
	}

	object, err := objectsStore.FetchObject(id)
	if errors.Is(err, store.ErrObjectNotFound) {
		respondWithError(w, http.StatusNotFound, "Object not found")
		return nil, false
	}
	if err != nil {
		respondWithServerError(w, r, "Error fetching object", err)
		return nil, false
	}
	return object, true
}
