package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotelms/pkg/config"
	"hotelms/pkg/contracts"
	apperrors "hotelms/pkg/errors"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

const apiPrefix = "/api/"

type Application struct {
	cfg           *config.Config
	server        *http.Server
	healthHandler http.Handler
	appHandler    http.Handler
	onShutdown    []func()
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds the two handler trees: probes with the minimal middleware set
// and the API with the full chain.
func (a *Application) SetApp(healthHandler contracts.Handler, appHandlers ...contracts.Handler) {
	a.setHealthHandler(healthHandler)
	a.setAppHandler(appHandlers)
	a.setAppServer()
}

// OnShutdown registers fn to run after the HTTP server has drained.
func (a *Application) OnShutdown(fn func()) {
	a.onShutdown = append(a.onShutdown, fn)
}

// Handler exposes the composed handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler(healthHandler contracts.Handler) {
	healthRouter := a.newRouter()
	healthHandler.RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandlers []contracts.Handler) {
	appRouter := a.newRouter()
	for _, handler := range appHandlers {
		handler.RegisterRoutes(appRouter)
	}

	var h http.Handler = appRouter
	h = middleware.RequestTimeout(a.cfg.RequestTimeout, a.cfg.Log)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize), a.cfg.Log)(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.appHandler = h
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) newRouter() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := httputil.WriteError(w, apperrors.NotFound("Route")); err != nil {
			a.cfg.Log.Error("failed to write error response", "handler", "NotFound", "operation", "WriteError", "error", err)
		}
	})
	router.HandleMethodNotAllowed = false
	return router
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle(apiPrefix, a.appHandler)
	mux.Handle("/", a.healthHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      middleware.CORS(a.cfg.CORSOrigins)(mux),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	for _, fn := range a.onShutdown {
		fn()
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
