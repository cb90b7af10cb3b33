package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serveWithRequestID(req *http.Request) (*httptest.ResponseRecorder, string) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, seen
}

func TestRequestID_Generated(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/objects", nil)
	rr, seen := serveWithRequestID(req)

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestID_Reused(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/objects", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr, seen := serveWithRequestID(req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRequestID_InvalidReplaced(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/objects", nil)
	req.Header.Set(RequestIDHeader, "bad id with spaces")
	_, seen := serveWithRequestID(req)

	assert.NotEqual(t, "bad id with spaces", seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
