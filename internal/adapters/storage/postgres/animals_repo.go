package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
)

// selectColumns sigue el orden del CSV de outcomes; scanRecord depende de él.
const selectColumns = `
	rec_num, age_upon_outcome, animal_id, animal_type, breed, color,
	date_of_birth, datetime, monthyear, name, outcome_subtype, outcome_type,
	sex_upon_outcome, location_lat, location_long, age_upon_outcome_in_weeks`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

// buildSelect traduce el predicado a SQL. Los patrones de raza usan ~ (regex POSIX),
// compatible con los anclajes y comodines del catálogo.
func buildSelect(p queries.Predicate) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.AnimalType != "" {
		where = append(where, "animal_type = "+arg(p.AnimalType))
	}
	if pats := p.BreedPatterns(); len(pats) > 0 {
		ors := make([]string, 0, len(pats))
		for _, pat := range pats {
			ors = append(ors, "breed ~ "+arg(pat))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if p.Sex != "" {
		where = append(where, "sex_upon_outcome = "+arg(string(p.Sex)))
	}
	if p.Age != nil {
		where = append(where, "age_upon_outcome_in_weeks >= "+arg(p.Age.Min))
		where = append(where, "age_upon_outcome_in_weeks < "+arg(p.Age.Max))
	}

	q := "SELECT" + selectColumns + "\n\tFROM animals"
	if len(where) > 0 {
		q += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\tORDER BY id"
	return q, args
}

func (r *AnimalsRepo) Read(ctx context.Context, p queries.Predicate) ([]animals.Record, error) {
	q, args := buildSelect(p)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Create(ctx context.Context, records []animals.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO animals (`+selectColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, recordArgs(rec)...); err != nil {
			return 0, fmt.Errorf("insert animal_id=%q: %w", rec.AnimalID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

const updateQuery = `
		UPDATE animals
		SET
			rec_num = $1,
			age_upon_outcome = $2,
			animal_id = $3,
			animal_type = $4,
			breed = $5,
			color = $6,
			date_of_birth = $7,
			datetime = $8,
			monthyear = $9,
			name = $10,
			outcome_subtype = $11,
			outcome_type = $12,
			sex_upon_outcome = $13,
			location_lat = $14,
			location_long = $15,
			age_upon_outcome_in_weeks = $16
		WHERE id = (SELECT id FROM animals WHERE animal_id = $17 ORDER BY id LIMIT 1)
	`

const deleteQuery = `DELETE FROM animals WHERE animal_id = $1`

// updateArgs: los 16 campos en orden de columnas y animal_id como $17.
func updateArgs(animalID string, rec animals.Record) []any {
	return append(recordArgs(rec), animalID)
}

// Update reemplaza el registro más antiguo con ese animal_id.
func (r *AnimalsRepo) Update(ctx context.Context, animalID string, rec animals.Record) error {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateQuery, updateArgs(animalID, rec)...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, animalID string) error {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteQuery, animalID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (animals.Record, error) {
	var (
		rec      animals.Record
		sex      string
		lat, lng sql.NullFloat64
	)
	if err := s.Scan(
		&rec.RecNum,
		&rec.AgeUponOutcome,
		&rec.AnimalID,
		&rec.AnimalType,
		&rec.Breed,
		&rec.Color,
		&rec.DateOfBirth,
		&rec.DateTime,
		&rec.MonthYear,
		&rec.Name,
		&rec.OutcomeSubtype,
		&rec.OutcomeType,
		&sex,
		&lat,
		&lng,
		&rec.AgeWeeks,
	); err != nil {
		return animals.Record{}, err
	}
	rec.SexUponOutcome = animals.SexStatus(sex)
	rec.Latitude = fromNullFloat(lat)
	rec.Longitude = fromNullFloat(lng)
	return rec, nil
}

func recordArgs(rec animals.Record) []any {
	return []any{
		rec.RecNum,
		rec.AgeUponOutcome,
		rec.AnimalID,
		rec.AnimalType,
		rec.Breed,
		rec.Color,
		rec.DateOfBirth,
		rec.DateTime,
		rec.MonthYear,
		rec.Name,
		rec.OutcomeSubtype,
		rec.OutcomeType,
		string(rec.SexUponOutcome),
		toNullFloat(rec.Latitude),
		toNullFloat(rec.Longitude),
		rec.AgeWeeks,
	}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
