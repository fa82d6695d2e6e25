package router

import (
	"errors"
	"net/http"
	"time"

	_ "shelter-dashboard/docs"
	"shelter-dashboard/internal/domain/dashboard"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/domain/queries"
	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Repo es el store de outcomes ya conectado (memory, mongo o postgres).
	Repo dataview.Repository

	Log        logger.Logger // puede ser nil (Nop)
	SessionTTL time.Duration
	PageSize   int
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Repo == nil {
		return nil, errors.New("router: nil repository")
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.PageSize <= 0 {
		opts.PageSize = dataview.DefaultPageSize
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))
	// Recover loguea con nuestro logger; Recoverer queda como respaldo externo.
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Catálogo y loader se arman una vez; las sesiones comparten ambos.
	catalog := queries.NewCatalog(log)
	loader := dataview.NewLoader(opts.Repo, catalog, log)

	svc, err := dashboard.NewService(dashboard.Deps{
		Loader:     loader,
		Log:        log,
		SessionTTL: opts.SessionTTL,
		PageSize:   opts.PageSize,
	})
	if err != nil {
		return nil, err
	}

	dashboard.RegisterRoutes(r, svc, log)

	return r, nil
}
