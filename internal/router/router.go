package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"realty-catalog/internal/middleware"
	"realty-catalog/internal/platform/logger"
	"realty-catalog/internal/rest"
	"realty-catalog/internal/service"
	"realty-catalog/internal/storage"
)

type Options struct {
	// Store es la fábrica de unidades de trabajo del backend elegido
	// (Postgres o documental); la decide main según config.
	Store storage.Factory

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Log != nil {
		r.Use(middleware.AccessLog(opts.Log))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services por módulo
	ownersSvc := service.NewOwnerService(opts.Store)
	propertiesSvc := service.NewPropertyService(opts.Store)
	imagesSvc := service.NewImageService(opts.Store)
	tracesSvc := service.NewTraceService(opts.Store)

	// Rutas por módulo
	rest.RegisterOwnerRoutes(r, ownersSvc)
	rest.RegisterPropertyRoutes(r, propertiesSvc)
	rest.RegisterImageRoutes(r, imagesSvc)
	rest.RegisterTraceRoutes(r, tracesSvc)

	return r
}
