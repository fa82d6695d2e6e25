package dataview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
)

const DefaultPageSize = 10

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortKey struct {
	ColumnID  string        `json:"column_id"`
	Direction SortDirection `json:"direction"`
}

// View es el estado de la tabla de una sesión: registros del filtro activo más
// orden, filtros por columna, paginación y selección.
// No es seguro para uso concurrente; la sesión serializa los eventos.
type View struct {
	filter        string
	unconditional bool
	records       []animals.Record

	sortBy   []SortKey
	filters  []ColumnFilter
	page     int
	pageSize int

	selectedColumns []string
	selection       Selection

	visible []animals.Record
}

func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		filter:        queries.FilterAll,
		unconditional: true,
		records:       []animals.Record{},
		pageSize:      pageSize,
		selection:     NoSelection{},
		visible:       []animals.Record{},
	}
}

// Replace recrea el estado completo para un nuevo filtro (no hace merge).
// Con datos, la fila 0 queda seleccionada como en la carga inicial del dashboard.
func (v *View) Replace(p queries.Predicate, records []animals.Record) {
	v.filter = p.Name
	v.unconditional = p.IsUnconditional()
	v.records = slices.Clone(records)
	if v.records == nil {
		v.records = []animals.Record{}
	}

	v.sortBy = nil
	v.filters = nil
	v.page = 0
	v.selectedColumns = nil
	v.selection = RowSelected{Index: 0}

	v.recompute()
}

func (v *View) Filter() string            { return v.filter }
func (v *View) IsUnconditional() bool     { return v.unconditional }
func (v *View) Records() []animals.Record { return v.records }
func (v *View) Visible() []animals.Record { return v.visible }
func (v *View) Selection() Selection      { return v.selection }
func (v *View) PageCurrent() int          { return v.page }
func (v *View) PageSize() int             { return v.pageSize }
func (v *View) SortKeys() []SortKey       { return slices.Clone(v.sortBy) }
func (v *View) SelectedColumns() []string { return slices.Clone(v.selectedColumns) }

func (v *View) ColumnFilters() []ColumnFilter {
	return slices.Clone(v.filters)
}

func (v *View) PageCount() int {
	if len(v.visible) == 0 {
		return 0
	}
	return (len(v.visible) + v.pageSize - 1) / v.pageSize
}

// PageRows es la ventana de la página actual sobre los datos visibles.
func (v *View) PageRows() []animals.Record {
	start := v.page * v.pageSize
	if start >= len(v.visible) {
		return []animals.Record{}
	}
	end := min(start+v.pageSize, len(v.visible))
	return v.visible[start:end]
}

// SelectColumns reemplaza las columnas seleccionadas (cero o más).
func (v *View) SelectColumns(ids []string) error {
	if err := animals.ValidateColumns(ids); err != nil {
		return err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	v.selectedColumns = out
	return nil
}

// SelectRow selecciona una única fila de los datos visibles.
func (v *View) SelectRow(index int) error {
	if index < 0 || index >= len(v.visible) {
		return fmt.Errorf("%w: index %d with %d visible rows", ErrInvalidRow, index, len(v.visible))
	}
	v.selection = RowSelected{Index: index}
	return nil
}

func (v *View) ClearRow() {
	v.selection = NoSelection{}
}

func (v *View) SortBy(keys []SortKey) error {
	out := make([]SortKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := animals.LookupColumn(k.ColumnID); !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidSort, animals.ErrUnknownColumn, k.ColumnID)
		}
		switch k.Direction {
		case SortAsc, SortDesc:
		case "":
			k.Direction = SortAsc
		default:
			return fmt.Errorf("%w: direction %q", ErrInvalidSort, k.Direction)
		}
		out = append(out, k)
	}
	v.sortBy = out
	v.recompute()
	return nil
}

// FilterColumn fija (o con query vacía, quita) el filtro de una columna.
func (v *View) FilterColumn(column, query string) error {
	if strings.TrimSpace(query) == "" {
		if _, ok := animals.LookupColumn(column); !ok {
			return fmt.Errorf("%w: %q", animals.ErrUnknownColumn, column)
		}
		v.filters = slices.DeleteFunc(v.filters, func(f ColumnFilter) bool { return f.Column == column })
		v.recompute()
		return nil
	}

	f, err := ParseColumnFilter(column, query)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(v.filters, func(x ColumnFilter) bool { return x.Column == column })
	if idx >= 0 {
		v.filters[idx] = f
	} else {
		v.filters = append(v.filters, f)
	}
	v.recompute()
	return nil
}

func (v *View) SetPage(n int) error {
	if n < 0 || (n > 0 && n >= v.PageCount()) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, n, v.PageCount())
	}
	v.page = n
	return nil
}

// recompute rehace los datos visibles y revalida página y selección.
func (v *View) recompute() {
	visible := make([]animals.Record, 0, len(v.records))
	for _, r := range v.records {
		if v.matchesFilters(r) {
			visible = append(visible, r)
		}
	}

	if len(v.sortBy) > 0 {
		slices.SortStableFunc(visible, func(a, b animals.Record) int {
			for _, k := range v.sortBy {
				c := compareCells(a, b, k.ColumnID)
				if k.Direction == SortDesc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}
	v.visible = visible

	if pc := v.PageCount(); v.page >= pc {
		v.page = max(0, pc-1)
	}
	v.selection = Revalidate(v.selection, len(v.visible))
}

func (v *View) matchesFilters(r animals.Record) bool {
	for _, f := range v.filters {
		if !f.Match(r) {
			return false
		}
	}
	return true
}

// compareCells: celdas vacías al final; numéricas por valor, el resto por texto.
func compareCells(a, b animals.Record, column string) int {
	_, aok := a.Value(column)
	_, bok := b.Value(column)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	if an, ok := a.Number(column); ok {
		bn, _ := b.Number(column)
		return cmp.Compare(an, bn)
	}
	return strings.Compare(a.Text(column), b.Text(column))
}
