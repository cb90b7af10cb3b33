package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/config"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/invmang-in-go/pkg/server/store/gorm"
)

// Version is reported by the status endpoint; overridden at link time
var Version = "0.1.0"

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.InventoryConfig

	InventoryStore store.InventoryStore
	HealthStore    store.HealthStore

	srv *http.Server
}

// NewServer wires the router and gorm stores for db.
// A nil cfg falls back to config.Get().
func NewServer(db *gorm.DB, cfg *config.InventoryConfig) *Server {
	if cfg == nil {
		cfg = config.Get()
	}

	router := mux.NewRouter()
	s := &Server{
		Router:         router,
		DB:             db,
		Config:         cfg,
		InventoryStore: gormstore.NewInventoryStore(db),
		HealthStore:    gormstore.NewHealthStore(db),
	}

	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         cfg.Addr(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
	}
	return s
}

// Handler returns the router wrapped with request ids, access logging and
// panic recovery.
func (s *Server) Handler() http.Handler {
	var h http.Handler = middleware.RequestID(s.Router)
	h = handlers.LoggingHandler(os.Stdout, h)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// Addr is the address the server listens on
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
