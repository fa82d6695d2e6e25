package animals

import (
	"errors"
	"testing"
)

func TestRecord_Coordinates(t *testing.T) {
	r := Record{AnimalID: "A1", Latitude: Float(30.75), Longitude: Float(-97.48)}
	lat, lon, err := r.Coordinates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 30.75 || lon != -97.48 {
		t.Fatalf("expected (30.75,-97.48), got (%v,%v)", lat, lon)
	}

	_, _, err = Record{AnimalID: "A2", Latitude: Float(30.1)}.Coordinates()
	if !errors.Is(err, ErrMissingCoordinates) {
		t.Fatalf("expected ErrMissingCoordinates, got %v", err)
	}
}

func TestRecord_ValueCoversEveryColumn(t *testing.T) {
	r := Record{Latitude: Float(1), Longitude: Float(2)}
	for _, c := range Columns() {
		if _, ok := r.Value(c.ID); !ok {
			t.Fatalf("column %q has no value accessor", c.ID)
		}
	}
	if _, ok := r.Value("_id"); ok {
		t.Fatalf("_id must not be addressable")
	}
}

func TestRecord_TextAndNumber(t *testing.T) {
	r := Record{RecNum: 7, Breed: "Beagle", AgeWeeks: 52.5}

	if got := r.Text(ColRecNum); got != "7" {
		t.Fatalf("rec_num text: got %q", got)
	}
	if got := r.Text(ColAgeWeeks); got != "52.5" {
		t.Fatalf("age text: got %q", got)
	}
	if _, ok := r.Number(ColBreed); ok {
		t.Fatalf("breed must not be numeric")
	}
	if n, ok := r.Number(ColAgeWeeks); !ok || n != 52.5 {
		t.Fatalf("age number: got %v %v", n, ok)
	}
	if got := r.Text(ColLatitude); got != "" {
		t.Fatalf("missing latitude should render empty, got %q", got)
	}
}

func TestValidateColumns(t *testing.T) {
	if err := ValidateColumns([]string{ColBreed, ColName}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateColumns([]string{ColBreed, "_id"}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}
