package dataview

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shelter-dashboard/internal/domain/animals"
)

type op string

const (
	opContains   op = "contains"
	opRegex      op = "regex"
	opEq         op = "="
	opNe         op = "!="
	opLt         op = "<"
	opLe         op = "<="
	opGt         op = ">"
	opGe         op = ">="
	opDatePrefix op = "datestartswith"
)

// Prefijos simbólicos; el orden importa (<= antes que <).
var symbolOps = []struct {
	prefix string
	op     op
}{
	{"<=", opLe},
	{">=", opGe},
	{"!=", opNe},
	{"<", opLt},
	{">", opGt},
	{"=", opEq},
}

var wordOps = map[string]op{
	"eq":             opEq,
	"ne":             opNe,
	"lt":             opLt,
	"le":             opLe,
	"gt":             opGt,
	"ge":             opGe,
	"contains":       opContains,
	"datestartswith": opDatePrefix,
}

// ColumnFilter es un filtro por columna ya compilado. Case-insensitive.
type ColumnFilter struct {
	Column string `json:"column_id"`
	Query  string `json:"query"`

	op      op
	operand string
	number  float64
	re      *regexp.Regexp
	numeric bool
}

// ParseColumnFilter compila la query de una columna.
//
// Sintaxis: texto plano (contains), /regex/, operadores = != < <= > >=
// o sus formas eq ne lt le gt ge, "contains x" y "datestartswith x".
func ParseColumnFilter(column, query string) (ColumnFilter, error) {
	col, ok := animals.LookupColumn(column)
	if !ok {
		return ColumnFilter{}, fmt.Errorf("%w: %q", animals.ErrUnknownColumn, column)
	}

	q := strings.TrimSpace(query)
	f := ColumnFilter{Column: column, Query: query, numeric: col.Numeric}
	if q == "" {
		return ColumnFilter{}, fmt.Errorf("%w: empty query for %q", ErrInvalidQuery, column)
	}

	if len(q) >= 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/") {
		re, err := regexp.Compile("(?i)" + q[1:len(q)-1])
		if err != nil {
			return ColumnFilter{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		f.op = opRegex
		f.re = re
		return f, nil
	}

	f.op, f.operand = splitOperator(q)
	f.operand = unquote(f.operand)
	if f.operand == "" {
		return ColumnFilter{}, fmt.Errorf("%w: missing operand in %q", ErrInvalidQuery, query)
	}

	if f.numeric && f.op.isComparison() {
		n, err := strconv.ParseFloat(f.operand, 64)
		if err != nil {
			return ColumnFilter{}, fmt.Errorf("%w: %q is not a number", ErrInvalidQuery, f.operand)
		}
		f.number = n
	}
	return f, nil
}

func (o op) isComparison() bool {
	switch o {
	case opEq, opNe, opLt, opLe, opGt, opGe:
		return true
	}
	return false
}

func splitOperator(q string) (op, string) {
	for _, s := range symbolOps {
		if strings.HasPrefix(q, s.prefix) {
			return s.op, strings.TrimSpace(q[len(s.prefix):])
		}
	}
	if word, rest, found := strings.Cut(q, " "); found {
		if o, ok := wordOps[strings.ToLower(word)]; ok {
			return o, strings.TrimSpace(rest)
		}
	}
	return opContains, q
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Match aplica el filtro a un registro. Celdas vacías nunca matchean.
func (f ColumnFilter) Match(r animals.Record) bool {
	if _, ok := r.Value(f.Column); !ok {
		return false
	}

	if f.numeric && f.op.isComparison() {
		n, _ := r.Number(f.Column)
		return compareNumbers(f.op, n, f.number)
	}

	text := strings.ToLower(r.Text(f.Column))
	operand := strings.ToLower(f.operand)

	switch f.op {
	case opRegex:
		return f.re.MatchString(text)
	case opContains:
		return strings.Contains(text, operand)
	case opDatePrefix:
		return strings.HasPrefix(text, operand)
	default:
		return compareStrings(f.op, text, operand)
	}
}

func compareNumbers(o op, a, b float64) bool {
	switch o {
	case opEq:
		return a == b
	case opNe:
		return a != b
	case opLt:
		return a < b
	case opLe:
		return a <= b
	case opGt:
		return a > b
	case opGe:
		return a >= b
	}
	return false
}

func compareStrings(o op, a, b string) bool {
	c := strings.Compare(a, b)
	switch o {
	case opEq:
		return c == 0
	case opNe:
		return c != 0
	case opLt:
		return c < 0
	case opLe:
		return c <= 0
	case opGt:
		return c > 0
	case opGe:
		return c >= 0
	}
	return false
}
