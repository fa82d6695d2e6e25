package dataview

import (
	"context"
	"fmt"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
	"shelter-dashboard/internal/platform/logger"
)

// Loader resuelve un filtro contra el catálogo y lee el store.
type Loader struct {
	repo    Repository
	catalog *queries.Catalog
	log     logger.Logger
}

func NewLoader(repo Repository, catalog *queries.Catalog, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{repo: repo, catalog: catalog, log: log}
}

// Load devuelve todos los registros que cumplen el predicado del filtro.
// Un resultado vacío no es error; un error de lectura se propaga sin reintentos.
func (l *Loader) Load(ctx context.Context, filter string) (queries.Predicate, []animals.Record, error) {
	p := l.catalog.Lookup(filter)

	records, err := l.repo.Read(ctx, p)
	if err != nil {
		l.log.Error("store read failed", map[string]any{"filter": p.Name, "err": err})
		return p, nil, fmt.Errorf("load %q: %w", p.Name, err)
	}
	if records == nil {
		records = []animals.Record{}
	}

	l.log.Debug("filter loaded", map[string]any{"filter": p.Name, "rows": len(records)})
	return p, records, nil
}

func (l *Loader) Catalog() *queries.Catalog {
	return l.catalog
}
