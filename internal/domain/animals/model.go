package animals

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMissingCoordinates = errors.New("record missing coordinates")
	ErrUnknownColumn      = errors.New("unknown column")
)

// SexStatus es sexo + estado reproductivo al momento del outcome.
type SexStatus string

const (
	SexIntactFemale  SexStatus = "Intact Female"
	SexIntactMale    SexStatus = "Intact Male"
	SexSpayedFemale  SexStatus = "Spayed Female"
	SexNeuteredMale  SexStatus = "Neutered Male"
	SexUnknownStatus SexStatus = "Unknown"
)

const AnimalTypeDog = "Dog"

// Record representa un outcome del refugio (Austin Animal Center).
// El _id que asigna el store no forma parte del modelo.
type Record struct {
	RecNum         int       `json:"rec_num" bson:"rec_num"`
	AgeUponOutcome string    `json:"age_upon_outcome" bson:"age_upon_outcome"`
	AnimalID       string    `json:"animal_id" bson:"animal_id"`
	AnimalType     string    `json:"animal_type" bson:"animal_type"`
	Breed          string    `json:"breed" bson:"breed"`
	Color          string    `json:"color" bson:"color"`
	DateOfBirth    string    `json:"date_of_birth" bson:"date_of_birth"`
	DateTime       string    `json:"datetime" bson:"datetime"`
	MonthYear      string    `json:"monthyear" bson:"monthyear"`
	Name           string    `json:"name" bson:"name"`
	OutcomeSubtype string    `json:"outcome_subtype" bson:"outcome_subtype"`
	OutcomeType    string    `json:"outcome_type" bson:"outcome_type"`
	SexUponOutcome SexStatus `json:"sex_upon_outcome" bson:"sex_upon_outcome"`

	// Punteros: un documento sin coordenadas se detecta en vez de leerse como (0,0).
	Latitude  *float64 `json:"location_lat" bson:"location_lat,omitempty"`
	Longitude *float64 `json:"location_long" bson:"location_long,omitempty"`

	AgeWeeks float64 `json:"age_upon_outcome_in_weeks" bson:"age_upon_outcome_in_weeks"`
}

// Coordinates devuelve (lat, long) o ErrMissingCoordinates.
func (r Record) Coordinates() (float64, float64, error) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, fmt.Errorf("%w: animal_id=%q", ErrMissingCoordinates, r.AnimalID)
	}
	return *r.Latitude, *r.Longitude, nil
}

// Value devuelve la celda de la columna indicada. ok=false si la columna no existe
// o si la celda está vacía (coordenadas ausentes).
func (r Record) Value(column string) (any, bool) {
	switch column {
	case ColRecNum:
		return r.RecNum, true
	case ColAgeUponOutcome:
		return r.AgeUponOutcome, true
	case ColAnimalID:
		return r.AnimalID, true
	case ColAnimalType:
		return r.AnimalType, true
	case ColBreed:
		return r.Breed, true
	case ColColor:
		return r.Color, true
	case ColDateOfBirth:
		return r.DateOfBirth, true
	case ColDateTime:
		return r.DateTime, true
	case ColMonthYear:
		return r.MonthYear, true
	case ColName:
		return r.Name, true
	case ColOutcomeSubtype:
		return r.OutcomeSubtype, true
	case ColOutcomeType:
		return r.OutcomeType, true
	case ColSexUponOutcome:
		return string(r.SexUponOutcome), true
	case ColLatitude:
		if r.Latitude == nil {
			return nil, false
		}
		return *r.Latitude, true
	case ColLongitude:
		if r.Longitude == nil {
			return nil, false
		}
		return *r.Longitude, true
	case ColAgeWeeks:
		return r.AgeWeeks, true
	default:
		return nil, false
	}
}

// Text devuelve la celda como texto (para filtros y orden lexicográfico).
func (r Record) Text(column string) string {
	v, ok := r.Value(column)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Number devuelve la celda numérica; ok=false si la columna no es numérica o está vacía.
func (r Record) Number(column string) (float64, bool) {
	v, ok := r.Value(column)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// Float es un helper para construir coordenadas en fixtures/importer.
func Float(v float64) *float64 { return &v }
