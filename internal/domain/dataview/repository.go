package dataview

import (
	"context"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
)

// Repository es el colaborador "store": lo único que consume el dashboard es Read.
type Repository interface {
	Read(ctx context.Context, p queries.Predicate) ([]animals.Record, error)
}

// Writer agrega las operaciones CRUD restantes del store. Solo las usa el importer.
type Writer interface {
	Repository
	Create(ctx context.Context, records []animals.Record) (int, error)
	Update(ctx context.Context, animalID string, r animals.Record) error
	Delete(ctx context.Context, animalID string) error
}
