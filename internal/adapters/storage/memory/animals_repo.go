package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/domain/queries"
)

var (
	ErrNotFound = errors.New("not found")
)

// animalsRepo guarda los registros en orden de inserción (como un find() sin sort).
type animalsRepo struct {
	mu      sync.RWMutex
	records []animals.Record
}

func NewAnimalsRepo(seed ...animals.Record) dataview.Writer {
	r := &animalsRepo{}
	r.records = append(r.records, seed...)
	return r
}

func (r *animalsRepo) Read(ctx context.Context, p queries.Predicate) ([]animals.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Record, 0)
	for _, rec := range r.records {
		if p.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *animalsRepo) Create(ctx context.Context, records []animals.Record) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if strings.TrimSpace(rec.AnimalID) == "" {
			return 0, errors.New("animal_id required")
		}
	}
	r.records = append(r.records, records...)
	return len(records), nil
}

// Update reemplaza el primer registro con ese animal_id.
func (r *animalsRepo) Update(ctx context.Context, animalID string, rec animals.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].AnimalID == animalID {
			r.records[i] = rec
			return nil
		}
	}
	return ErrNotFound
}

// Delete borra todos los registros con ese animal_id (un animal puede tener varios outcomes).
func (r *animalsRepo) Delete(ctx context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	removed := 0
	for _, rec := range r.records {
		if rec.AnimalID == animalID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
