package aac

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shelter-dashboard/internal/domain/animals"
)

var (
	ErrMissingColumn = errors.New("missing csv column")
	ErrInvalidRow    = errors.New("invalid csv row")
)

// recNumHeaders: el export de AAC trae el índice sin nombre en la primera columna.
var recNumHeaders = []string{animals.ColRecNum, ""}

// required son las columnas sin las cuales un registro no tiene sentido.
var required = []string{animals.ColAnimalID, animals.ColAnimalType, animals.ColBreed}

// Parse lee el CSV de outcomes AAC. Se guía por el header; el orden de columnas no importa
// y las columnas extra se ignoran. Los errores indican la línea del archivo.
func Parse(r io.Reader) ([]animals.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidRow)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	recNumAt := -1
	for _, h := range recNumHeaders {
		if i, ok := idx[h]; ok {
			recNumAt = i
			break
		}
	}

	out := make([]animals.Record, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// *csv.ParseError ya incluye la línea
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(row, idx, recNumAt)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, idx map[string]int, recNumAt int) (animals.Record, error) {
	cell := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := animals.Record{
		AgeUponOutcome: cell(animals.ColAgeUponOutcome),
		AnimalID:       cell(animals.ColAnimalID),
		AnimalType:     cell(animals.ColAnimalType),
		Breed:          cell(animals.ColBreed),
		Color:          cell(animals.ColColor),
		DateOfBirth:    cell(animals.ColDateOfBirth),
		DateTime:       cell(animals.ColDateTime),
		MonthYear:      cell(animals.ColMonthYear),
		Name:           cell(animals.ColName),
		OutcomeSubtype: cell(animals.ColOutcomeSubtype),
		OutcomeType:    cell(animals.ColOutcomeType),
		SexUponOutcome: animals.SexStatus(cell(animals.ColSexUponOutcome)),
	}
	if rec.AnimalID == "" {
		return animals.Record{}, fmt.Errorf("%w: empty animal_id", ErrInvalidRow)
	}

	if recNumAt >= 0 && recNumAt < len(row) {
		if v := strings.TrimSpace(row[recNumAt]); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return animals.Record{}, fmt.Errorf("%w: rec_num %q", ErrInvalidRow, v)
			}
			rec.RecNum = n
		}
	}

	var err error
	if rec.Latitude, err = optionalFloat(cell(animals.ColLatitude), animals.ColLatitude); err != nil {
		return animals.Record{}, err
	}
	if rec.Longitude, err = optionalFloat(cell(animals.ColLongitude), animals.ColLongitude); err != nil {
		return animals.Record{}, err
	}
	weeks, err := optionalFloat(cell(animals.ColAgeWeeks), animals.ColAgeWeeks)
	if err != nil {
		return animals.Record{}, err
	}
	if weeks != nil {
		rec.AgeWeeks = *weeks
	}
	return rec, nil
}

// optionalFloat: celda vacía => nil (ausente), no cero.
func optionalFloat(v, col string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidRow, col, v)
	}
	return &f, nil
}
