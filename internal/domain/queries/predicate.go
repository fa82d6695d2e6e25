package queries

import (
	"regexp"

	"shelter-dashboard/internal/domain/animals"
)

// AgeRange: Min inclusivo, Max exclusivo (semanas).
type AgeRange struct {
	Min float64
	Max float64
}

func (a AgeRange) Contains(weeks float64) bool {
	return weeks >= a.Min && weeks < a.Max
}

// BreedPattern es una regex sobre el campo breed (misma sintaxis que $regex en Mongo
// y ~ en Postgres para los patrones del catálogo).
type BreedPattern struct {
	Pattern string
	re      *regexp.Regexp
}

func NewBreedPattern(pattern string) BreedPattern {
	return BreedPattern{Pattern: pattern, re: regexp.MustCompile(pattern)}
}

func (b BreedPattern) MatchString(s string) bool {
	if b.re == nil {
		return regexp.MustCompile(b.Pattern).MatchString(s)
	}
	return b.re.MatchString(s)
}

// Predicate es un filtro con nombre, inmutable una vez construido.
// Las condiciones presentes se combinan con AND; Breeds es un OR interno.
type Predicate struct {
	Name       string
	AnimalType string
	Breeds     []BreedPattern
	Sex        animals.SexStatus
	Age        *AgeRange
}

// IsUnconditional indica el caso "todos los perros" (sin breed/sex/age).
func (p Predicate) IsUnconditional() bool {
	return len(p.Breeds) == 0 && p.Sex == "" && p.Age == nil
}

// Matches evalúa el predicado en memoria.
func (p Predicate) Matches(r animals.Record) bool {
	if p.AnimalType != "" && r.AnimalType != p.AnimalType {
		return false
	}
	if p.Sex != "" && r.SexUponOutcome != p.Sex {
		return false
	}
	if p.Age != nil && !p.Age.Contains(r.AgeWeeks) {
		return false
	}
	if len(p.Breeds) == 0 {
		return true
	}
	for _, b := range p.Breeds {
		if b.MatchString(r.Breed) {
			return true
		}
	}
	return false
}

// BreedPatterns devuelve los patrones como strings (para adapters).
func (p Predicate) BreedPatterns() []string {
	out := make([]string, 0, len(p.Breeds))
	for _, b := range p.Breeds {
		out = append(out, b.Pattern)
	}
	return out
}
