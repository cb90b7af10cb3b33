package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

func newSQLiteServer(t *testing.T) *server.Server {
	t.Helper()
	s, err := NewTestServer("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return s
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAddObjectScenario(t *testing.T) {
	s := newSQLiteServer(t)
	h := s.Router

	w := doRequest(h, "POST", "/api/add_object", `{"serial":"S1","name":"Rack"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Object added successfully.","id":1}`, w.Body.String())

	w = doRequest(h, "POST", "/api/add_object", `{"serial":"S2","name":"Server","parent_id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Object added successfully.","id":2}`, w.Body.String())

	w = doRequest(h, "POST", "/api/add_object", `{"serial":"S3","name":"Ghost","parent_id":999}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid parent_id"}`, w.Body.String())

	w = doRequest(h, "GET", "/api/objects", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"objects":[
		{"id":1,"serial":"S1","name":"Rack"},
		{"id":2,"serial":"S2","name":"Server"}
	]}`, w.Body.String())

	w = doRequest(h, "GET", "/api/relationships", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"relationships":[{"parent_id":1,"child_id":2}]}`, w.Body.String())
}

func TestAddObjectValidation(t *testing.T) {
	s := newSQLiteServer(t)
	h := s.Router

	w := doRequest(h, "POST", "/api/add_object", `{"serial":"P","name":"Parent"}`)
	require.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed body", body: `{"serial":`, wantErr: "Invalid JSON"},
		{name: "not an object", body: `"S1"`, wantErr: "Invalid JSON"},
		{name: "missing name", body: `{"serial":"S1"}`, wantErr: "Missing required fields: 'serial' and 'name'"},
		{name: "missing serial", body: `{"name":"Widget"}`, wantErr: "Missing required fields: 'serial' and 'name'"},
		{name: "non-string name", body: `{"serial":"S1","name":7}`, wantErr: "Fields 'serial' and 'name' must be strings"},
		{name: "string parent", body: `{"serial":"S1","name":"W","parent_id":"1"}`, wantErr: "Invalid parent_id type"},
		{name: "null parent", body: `{"serial":"S1","name":"W","parent_id":null}`, wantErr: "Invalid parent_id type"},
		{name: "fractional parent", body: `{"serial":"S1","name":"W","parent_id":1.5}`, wantErr: "parent_id must be an integer"},
		{name: "unknown parent", body: `{"serial":"S1","name":"W","parent_id":42}`, wantErr: "Invalid parent_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(h, "POST", "/api/add_object", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, w)["error"])
		})
	}

	// every rejected request rolled back; only the parent remains
	w = doRequest(h, "GET", "/api/objects", "")
	assert.JSONEq(t, `{"objects":[{"id":1,"serial":"P","name":"Parent"}]}`, w.Body.String())
	w = doRequest(h, "GET", "/api/relationships", "")
	assert.JSONEq(t, `{"relationships":[]}`, w.Body.String())
}

func TestAddObjectIntegralFloatParent(t *testing.T) {
	s := newSQLiteServer(t)
	h := s.Router

	require.Equal(t, http.StatusOK, doRequest(h, "POST", "/api/add_object", `{"serial":"P","name":"Parent"}`).Code)

	w := doRequest(h, "POST", "/api/add_object", `{"serial":"C","name":"Child","parent_id":1.0}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(h, "GET", "/api/relationships", "")
	assert.JSONEq(t, `{"relationships":[{"parent_id":1,"child_id":2}]}`, w.Body.String())
}

func TestFetchObjectAndDescendants(t *testing.T) {
	s := newSQLiteServer(t)
	h := s.Router

	for _, body := range []string{
		`{"serial":"R1","name":"Rack"}`,
		`{"serial":"SV1","name":"Server","parent_id":1}`,
		`{"serial":"D1","name":"Disk","parent_id":2}`,
	} {
		require.Equal(t, http.StatusOK, doRequest(h, "POST", "/api/add_object", body).Code)
	}

	w := doRequest(h, "GET", "/api/objects/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"object": {"id":2,"serial":"SV1","name":"Server"},
		"parent_ids": [1],
		"child_ids": [3]
	}`, w.Body.String())

	w = doRequest(h, "GET", "/api/objects/3", "")
	assert.JSONEq(t, `{
		"object": {"id":3,"serial":"D1","name":"Disk"},
		"parent_ids": [2],
		"child_ids": []
	}`, w.Body.String())

	w = doRequest(h, "GET", "/api/objects/1/descendants", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"objects":[
		{"id":2,"serial":"SV1","name":"Server"},
		{"id":3,"serial":"D1","name":"Disk"}
	]}`, w.Body.String())

	w = doRequest(h, "GET", "/api/objects/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Object not found"}`, w.Body.String())

	w = doRequest(h, "GET", "/api/objects/99/descendants", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(h, "GET", "/api/objects/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid object id"}`, w.Body.String())
}

func TestAddObjectRequestIDHeader(t *testing.T) {
	s := newSQLiteServer(t)

	req := httptest.NewRequest("POST", "/api/add_object", strings.NewReader(`{"serial":"S1","name":"W"}`))
	req.Header.Set(middleware.RequestIDHeader, "test-req-1")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-req-1", w.Header().Get(middleware.RequestIDHeader))
}

func TestAddObjectTransactionWithMockDB(t *testing.T) {
	t.Run("commits object and relationship", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		m.Mock.ExpectBegin()
		m.ExpectObjectInsert("S2", "Server", 2)
		m.ExpectParentCount(1, 1)
		m.ExpectRelationshipInsert(1, 2)
		m.Mock.ExpectCommit()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S2","name":"Server","parent_id":1}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Object added successfully.","id":2}`, w.Body.String())
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})

	t.Run("rolls back on unknown parent", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		m.Mock.ExpectBegin()
		m.ExpectObjectInsert("S3", "Ghost", 3)
		m.ExpectParentCount(999, 0)
		m.Mock.ExpectRollback()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S3","name":"Ghost","parent_id":999}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid parent_id"}`, w.Body.String())
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})

	t.Run("rolls back on bad parent type before any lookup", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		m.Mock.ExpectBegin()
		m.ExpectObjectInsert("S4", "Text", 4)
		m.Mock.ExpectRollback()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S4","name":"Text","parent_id":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid parent_id type"}`, w.Body.String())
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})

	t.Run("reports insert failure as 500", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		m.Mock.ExpectBegin()
		m.ExpectObjectInsertError(errors.New("disk full"))
		m.Mock.ExpectRollback()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S5","name":"W"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error adding object: disk full"}`, w.Body.String())
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})

	t.Run("reports relationship failure as 500 and rolls back", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		m.Mock.ExpectBegin()
		m.ExpectObjectInsert("S6", "W", 6)
		m.ExpectParentCount(1, 1)
		m.ExpectRelationshipInsertError(errors.New("deadlock detected"))
		m.Mock.ExpectRollback()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S6","name":"W","parent_id":1}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error adding object: deadlock detected"}`, w.Body.String())
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})

	t.Run("client errors never open a transaction", func(t *testing.T) {
		s, m, err := NewMockTestServer()
		require.NoError(t, err)
		defer m.Close()

		w := doRequest(s.Router, "POST", "/api/add_object", `{"serial":"S7"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, m.Mock.ExpectationsWereMet())
	})
}

func TestListObjectsWithMockDB(t *testing.T) {
	s, m, err := NewMockTestServer()
	require.NoError(t, err)
	defer m.Close()

	m.ExpectObjectsList(ObjectRows().AddRow(1, "S1", "Rack").AddRow(2, "S2", "Server"))

	w := doRequest(s.Router, "GET", "/api/objects", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"objects":[
		{"id":1,"serial":"S1","name":"Rack"},
		{"id":2,"serial":"S2","name":"Server"}
	]}`, w.Body.String())
	assert.NoError(t, m.Mock.ExpectationsWereMet())
}

func TestListObjectsError(t *testing.T) {
	objectsStore := NewMockInventoryStore()
	objectsStore.On("ListObjects").Return(nil, errors.New("connection reset"))

	router := mux.NewRouter()
	router.HandleFunc("/api/objects", handleListObjects(objectsStore))

	w := doRequest(router, "GET", "/api/objects", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching objects: connection reset"}`, w.Body.String())
	objectsStore.AssertExpectations(t)
}

func TestListObjectsEmpty(t *testing.T) {
	objectsStore := NewMockInventoryStore()
	objectsStore.On("ListObjects").Return(nil, nil)

	router := mux.NewRouter()
	router.HandleFunc("/api/objects", handleListObjects(objectsStore))

	w := doRequest(router, "GET", "/api/objects", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"objects":[]}`, w.Body.String())
}

func TestFetchObjectStoreError(t *testing.T) {
	inventoryStore := NewMockInventoryStore()
	inventoryStore.On("FetchObject", int64(5)).Return(&store.Object{ID: 5, Serial: "S5", Name: "W"}, nil)
	inventoryStore.On("ParentIDs", int64(5)).Return(nil, errors.New("timeout"))

	router := mux.NewRouter()
	router.HandleFunc("/api/objects/{id}", handleFetchObject(inventoryStore))

	w := doRequest(router, "GET", "/api/objects/5", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching object: timeout"}`, w.Body.String())
	inventoryStore.AssertNotCalled(t, "ChildIDs", int64(5))
}
