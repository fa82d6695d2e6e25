package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"
)

func dog(breed string, sex animals.SexStatus, age float64) animals.Record {
	return animals.Record{AnimalType: animals.AnimalTypeDog, Breed: breed, SexUponOutcome: sex, AgeWeeks: age}
}

func TestCatalog_NamesInSelectorOrder(t *testing.T) {
	c := NewCatalog(nil)
	assert.Equal(t, []string{FilterWaterRescue, FilterMountain, FilterDisaster, FilterAll}, c.Names())
}

func TestCatalog_LookupFallsBackToAll(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewCatalog(logger.FromZap(zap.New(core)))

	all := c.Lookup(FilterAll)
	assert.True(t, all.IsUnconditional())
	assert.Equal(t, FilterAll, c.Lookup("").Name)
	assert.Equal(t, 0, logs.Len(), "empty and All must not warn")

	got := c.Lookup("Herding")
	assert.Equal(t, FilterAll, got.Name)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Herding", entry.ContextMap()["filter"])
}

func TestPredicate_WaterRescue(t *testing.T) {
	p := NewCatalog(nil).Lookup(FilterWaterRescue)

	assert.True(t, p.Matches(dog("Labrador Retriever Mix", animals.SexIntactFemale, 50)))
	assert.True(t, p.Matches(dog("Chesapeake Bay Retriever", animals.SexIntactFemale, 26)))
	assert.True(t, p.Matches(dog("Newfoundland", animals.SexIntactFemale, 155.9)))

	// una condición violada alcanza para excluir
	assert.False(t, p.Matches(dog("Poodle", animals.SexIntactFemale, 50)))
	assert.False(t, p.Matches(dog("Labrador Retriever", animals.SexIntactMale, 50)))
	assert.False(t, p.Matches(dog("Labrador Retriever", animals.SexIntactFemale, 156)))
	assert.False(t, p.Matches(dog("Labrador Retriever", animals.SexIntactFemale, 25)))
	// ^Chesa está anclado al inicio
	assert.False(t, p.Matches(dog("Mix Chesapeake", animals.SexIntactFemale, 50)))
}

func TestPredicate_MountainAndDisaster(t *testing.T) {
	c := NewCatalog(nil)
	mountain := c.Lookup(FilterMountain)
	disaster := c.Lookup(FilterDisaster)

	husky := dog("Siberian Husky", animals.SexIntactMale, 100)
	assert.True(t, mountain.Matches(husky))
	assert.False(t, disaster.Matches(husky))

	blood := dog("Bloodhound", animals.SexIntactMale, 250)
	assert.False(t, mountain.Matches(blood))
	assert.True(t, disaster.Matches(blood))

	rott := dog("Rottweiler", animals.SexIntactMale, 22)
	assert.False(t, mountain.Matches(rott), "mountain min age is 26")
	assert.True(t, disaster.Matches(rott))

	assert.False(t, disaster.Matches(dog("Rottweiler", animals.SexNeuteredMale, 100)))
}

func TestPredicate_AllMatchesOnlyDogs(t *testing.T) {
	all := NewCatalog(nil).Default()

	assert.True(t, all.Matches(dog("Poodle", animals.SexSpayedFemale, 500)))
	assert.False(t, all.Matches(animals.Record{AnimalType: "Cat", Breed: "Domestic Shorthair"}))
	assert.Empty(t, all.BreedPatterns())
}

func TestAgeRange_Bounds(t *testing.T) {
	r := AgeRange{Min: 20, Max: 300}
	assert.True(t, r.Contains(20))
	assert.False(t, r.Contains(300))
	assert.False(t, r.Contains(19.99))
}
