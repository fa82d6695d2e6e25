package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
)

func TestBuildSelect_WaterRescue(t *testing.T) {
	p := queries.NewCatalog(nil).Lookup(queries.FilterWaterRescue)

	q, args := buildSelect(p)

	wantWhere := "WHERE (breed ~ $1 OR breed ~ $2 OR breed ~ $3) AND sex_upon_outcome = $4 AND age_upon_outcome_in_weeks >= $5 AND age_upon_outcome_in_weeks < $6"
	if !strings.Contains(q, wantWhere) {
		t.Fatalf("unexpected query:\n%s", q)
	}
	wantArgs := []any{"Labrador*", "^Chesa*", "^Newfound*", "Intact Female", 26.0, 156.0}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSelect_AllDogsOnlyFiltersType(t *testing.T) {
	q, args := buildSelect(queries.NewCatalog(nil).Default())

	if !strings.Contains(q, "WHERE animal_type = $1\n") {
		t.Fatalf("unexpected query:\n%s", q)
	}
	if len(args) != 1 || args[0] != "Dog" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestBuildSelect_EmptyPredicateHasNoWhere(t *testing.T) {
	q, args := buildSelect(queries.Predicate{})
	if strings.Contains(q, "WHERE") || len(args) != 0 {
		t.Fatalf("expected unconditional select, got %q %v", q, args)
	}
}

func TestNullFloatRoundTrip(t *testing.T) {
	if fromNullFloat(toNullFloat(nil)) != nil {
		t.Fatalf("nil coordinate must stay nil")
	}
	got := fromNullFloat(toNullFloat(animals.Float(30.5)))
	if got == nil || *got != 30.5 {
		t.Fatalf("unexpected coordinate: %v", got)
	}
}

func TestUpdateArgs_MatchPlaceholders(t *testing.T) {
	rec := animals.Record{
		RecNum:         7,
		AnimalID:       "A725717",
		AnimalType:     "Dog",
		Breed:          "Labrador Retriever Mix",
		SexUponOutcome: animals.SexIntactFemale,
		Latitude:       animals.Float(30.65),
		AgeWeeks:       52.7,
	}

	args := updateArgs("A725717", rec)

	if len(args) != 17 {
		t.Fatalf("expected 17 args, got %d", len(args))
	}
	for i := 1; i <= len(args); i++ {
		if !strings.Contains(updateQuery, fmt.Sprintf("$%d", i)) {
			t.Fatalf("updateQuery has no placeholder $%d", i)
		}
	}
	if strings.Contains(updateQuery, "$18") {
		t.Fatalf("updateQuery has more placeholders than args")
	}
	if args[16] != "A725717" || args[2] != "A725717" {
		t.Fatalf("animal_id misplaced: %#v", args)
	}
	if args[12] != "Intact Female" {
		t.Fatalf("sex must be passed as text, got %#v", args[12])
	}
	if lat, ok := args[13].(sql.NullFloat64); !ok || !lat.Valid || lat.Float64 != 30.65 {
		t.Fatalf("unexpected latitude arg %#v", args[13])
	}
	if lng, ok := args[14].(sql.NullFloat64); !ok || lng.Valid {
		t.Fatalf("missing longitude must be NULL, got %#v", args[14])
	}
}

func TestAnimalsRepo_BlankIDIsNotFound(t *testing.T) {
	// no llega a la base: db nil
	repo := NewAnimalsRepo(nil)
	ctx := context.Background()

	if err := repo.Update(ctx, "  ", animals.Record{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if !strings.Contains(deleteQuery, "animal_id = $1") {
		t.Fatalf("unexpected delete query %q", deleteQuery)
	}
}
