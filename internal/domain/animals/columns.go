package animals

import "fmt"

const (
	ColRecNum         = "rec_num"
	ColAgeUponOutcome = "age_upon_outcome"
	ColAnimalID       = "animal_id"
	ColAnimalType     = "animal_type"
	ColBreed          = "breed"
	ColColor          = "color"
	ColDateOfBirth    = "date_of_birth"
	ColDateTime       = "datetime"
	ColMonthYear      = "monthyear"
	ColName           = "name"
	ColOutcomeSubtype = "outcome_subtype"
	ColOutcomeType    = "outcome_type"
	ColSexUponOutcome = "sex_upon_outcome"
	ColLatitude       = "location_lat"
	ColLongitude      = "location_long"
	ColAgeWeeks       = "age_upon_outcome_in_weeks"
)

// Column describe una columna de la tabla.
type Column struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Numeric    bool   `json:"numeric"`
	Selectable bool   `json:"selectable"`
}

// columns respeta el orden del CSV de outcomes AAC.
var columns = []Column{
	{ID: ColRecNum, Name: "rec_num", Numeric: true, Selectable: true},
	{ID: ColAgeUponOutcome, Name: "age_upon_outcome", Selectable: true},
	{ID: ColAnimalID, Name: "animal_id", Selectable: true},
	{ID: ColAnimalType, Name: "animal_type", Selectable: true},
	{ID: ColBreed, Name: "breed", Selectable: true},
	{ID: ColColor, Name: "color", Selectable: true},
	{ID: ColDateOfBirth, Name: "date_of_birth", Selectable: true},
	{ID: ColDateTime, Name: "datetime", Selectable: true},
	{ID: ColMonthYear, Name: "monthyear", Selectable: true},
	{ID: ColName, Name: "name", Selectable: true},
	{ID: ColOutcomeSubtype, Name: "outcome_subtype", Selectable: true},
	{ID: ColOutcomeType, Name: "outcome_type", Selectable: true},
	{ID: ColSexUponOutcome, Name: "sex_upon_outcome", Selectable: true},
	{ID: ColLatitude, Name: "location_lat", Numeric: true, Selectable: true},
	{ID: ColLongitude, Name: "location_long", Numeric: true, Selectable: true},
	{ID: ColAgeWeeks, Name: "age_upon_outcome_in_weeks", Numeric: true, Selectable: true},
}

var columnsByID = func() map[string]Column {
	m := make(map[string]Column, len(columns))
	for _, c := range columns {
		m[c.ID] = c
	}
	return m
}()

// Columns devuelve una copia del catálogo de columnas en orden de tabla.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

func LookupColumn(id string) (Column, bool) {
	c, ok := columnsByID[id]
	return c, ok
}

// ValidateColumns verifica que todos los ids existan.
func ValidateColumns(ids []string) error {
	for _, id := range ids {
		if _, ok := columnsByID[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
		}
	}
	return nil
}
