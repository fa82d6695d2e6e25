package queries

import (
	"strings"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"
)

const (
	FilterWaterRescue = "Water Rescue"
	FilterMountain    = "Mountain/Wilderness"
	FilterDisaster    = "Disaster/Individual"
	FilterAll         = "All"
)

// Catalog es el set fijo de filtros del dashboard. Se construye una vez al arrancar.
type Catalog struct {
	byName map[string]Predicate
	order  []string
	log    logger.Logger
}

func NewCatalog(log logger.Logger) *Catalog {
	if log == nil {
		log = logger.Nop()
	}

	preds := []Predicate{
		{
			Name:   FilterWaterRescue,
			Breeds: patterns("Labrador*", "^Chesa*", "^Newfound*"),
			Sex:    animals.SexIntactFemale,
			Age:    &AgeRange{Min: 26, Max: 156},
		},
		{
			Name:   FilterMountain,
			Breeds: patterns("German Shep*", "Alaskan Malamute*", "Old English*", "Siberian Husky*", "Rott*"),
			Sex:    animals.SexIntactMale,
			Age:    &AgeRange{Min: 26, Max: 156},
		},
		{
			Name:   FilterDisaster,
			Breeds: patterns("Doberman*", "German Shep*", "Golden Retr*", "Bloodhound*", "Rott*"),
			Sex:    animals.SexIntactMale,
			Age:    &AgeRange{Min: 20, Max: 300},
		},
		{
			Name:       FilterAll,
			AnimalType: animals.AnimalTypeDog,
		},
	}

	c := &Catalog{
		byName: make(map[string]Predicate, len(preds)),
		order:  make([]string, 0, len(preds)),
		log:    log,
	}
	for _, p := range preds {
		c.byName[p.Name] = p
		c.order = append(c.order, p.Name)
	}
	return c
}

// Names devuelve los filtros en el orden del selector.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Default es el predicado incondicional ("All").
func (c *Catalog) Default() Predicate {
	return c.byName[FilterAll]
}

// Lookup resuelve un nombre de filtro. Vacío o desconocido => All (fail open).
// Un nombre desconocido no vacío se loguea como caso inesperado.
func (c *Catalog) Lookup(name string) Predicate {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Default()
	}
	if p, ok := c.byName[name]; ok {
		return p
	}

	c.log.Warn("unrecognized filter, falling back to default", map[string]any{
		"filter":   name,
		"fallback": FilterAll,
	})
	return c.Default()
}

func patterns(ps ...string) []BreedPattern {
	out := make([]BreedPattern, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewBreedPattern(p))
	}
	return out
}
