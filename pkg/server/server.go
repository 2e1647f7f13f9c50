package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/server/middleware"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/shiplog/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/shiplog/pkg/token"
)

const (
	msgNoRoute          = "Not found."
	msgMethodNotAllowed = "Method not allowed."
)

// Stores groups the storage the endpoints use.
type Stores struct {
	Users        store.UsersStore
	Products     store.ProductsStore
	Updates      store.UpdatesStore
	UpdatePoints store.UpdatePointsStore
	Health       store.HealthStore
}

// GormStores returns postgres-backed stores sharing db.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Users:        gormstore.NewUsersStore(db),
		Products:     gormstore.NewProductsStore(db),
		Updates:      gormstore.NewUpdatesStore(db),
		UpdatePoints: gormstore.NewUpdatePointsStore(db),
		Health:       gormstore.NewHealthStore(db),
	}
}

type Server struct {
	Config        *config.Config
	Router        *mux.Router
	API           *mux.Router
	Issuer        *token.Issuer
	Hasher        *credential.Hasher
	Authenticator *middleware.Authenticator

	UsersStore        store.UsersStore
	ProductsStore     store.ProductsStore
	UpdatesStore      store.UpdatesStore
	UpdatePointsStore store.UpdatePointsStore
	HealthStore       store.HealthStore

	srv *http.Server
}

func NewServer(
	cfg *config.Config,
	stores Stores,
	issuer *token.Issuer,
	hasher *credential.Hasher,
) *Server {
	router := mux.NewRouter()
	authenticator := middleware.NewAuthenticator(issuer)

	// Everything below /api passes the gate first, including paths and
	// methods no route matches.
	apiRoot := mux.NewRouter()
	apiRoot.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierror.Write(w, apierror.New(http.StatusNotFound, msgNoRoute))
	})
	apiRoot.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierror.Write(w, apierror.New(http.StatusMethodNotAllowed, msgMethodNotAllowed))
	})
	api := apiRoot.PathPrefix("/api").Subrouter()
	gate := authenticator.Middleware(apiRoot)
	router.Handle("/api", gate)
	router.PathPrefix("/api/").Handler(gate)

	s := &Server{
		Config:            cfg,
		Router:            router,
		API:               api,
		Issuer:            issuer,
		Hasher:            hasher,
		Authenticator:     authenticator,
		UsersStore:        stores.Users,
		ProductsStore:     stores.Products,
		UpdatesStore:      stores.Updates,
		UpdatePointsStore: stores.UpdatePoints,
		HealthStore:       stores.Health,
	}

	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         cfg.Addr(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return s
}

// Handler returns the router wrapped in access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.Default()),
		handlers.PrintRecoveryStack(s.Config.Debug()),
	)
	return handlers.LoggingHandler(os.Stdout, recovery(s.Router))
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
