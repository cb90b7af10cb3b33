// Package server provides the HTTP server for the inventory API.
//
// It uses gorilla/mux for routing and gorilla/handlers for access logging
// and panic recovery. Every request is tagged with an X-Request-Id.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
//   - Router: HTTP request router
//   - DB: Database connection
//   - Config: listen address, timeouts and audit settings
//   - InventoryStore: object and relationship storage
//   - HealthStore: connectivity checks
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - POST /api/add_object - create an object, optionally under a parent
//   - GET /api/objects - list objects
//   - GET /api/objects/{id} - one object with its parents and children
//   - GET /api/objects/{id}/descendants - every object below {id}
//   - GET /api/relationships - list parent-child links
//   - GET / and GET /health - status and database health
package server
