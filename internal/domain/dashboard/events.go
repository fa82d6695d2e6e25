package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"shelter-dashboard/internal/domain/dataview"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
)

// Event es una interacción del usuario. apply muta el estado de entrada y devuelve
// las props que cambiaron.
type Event interface {
	Name() string
	apply(st *State) ([]Prop, error)
}

type FilterChanged struct {
	Value string
}

type ColumnsSelected struct {
	Columns []string
}

type RowClicked struct {
	Index int
}

type RowCleared struct{}

type SortChanged struct {
	SortBy []dataview.SortKey
}

type ColumnFilterChanged struct {
	Column string
	Query  string
}

type PageChanged struct {
	Page int
}

func (FilterChanged) Name() string       { return "filter_changed" }
func (ColumnsSelected) Name() string     { return "columns_selected" }
func (RowClicked) Name() string          { return "row_clicked" }
func (RowCleared) Name() string          { return "row_cleared" }
func (SortChanged) Name() string         { return "sort_changed" }
func (ColumnFilterChanged) Name() string { return "column_filter_changed" }
func (PageChanged) Name() string         { return "page_changed" }

func (e FilterChanged) apply(st *State) ([]Prop, error) {
	st.pendingFilter = strings.TrimSpace(e.Value)
	return []Prop{PropFilterValue}, nil
}

func (e ColumnsSelected) apply(st *State) ([]Prop, error) {
	if err := st.View.SelectColumns(e.Columns); err != nil {
		return nil, invalid(err)
	}
	return []Prop{PropSelectedColumns}, nil
}

func (e RowClicked) apply(st *State) ([]Prop, error) {
	if err := st.View.SelectRow(e.Index); err != nil {
		return nil, invalid(err)
	}
	return []Prop{PropSelectedRow}, nil
}

func (RowCleared) apply(st *State) ([]Prop, error) {
	st.View.ClearRow()
	return []Prop{PropSelectedRow}, nil
}

func (e SortChanged) apply(st *State) ([]Prop, error) {
	if err := st.View.SortBy(e.SortBy); err != nil {
		return nil, invalid(err)
	}
	return []Prop{PropSortBy}, nil
}

func (e ColumnFilterChanged) apply(st *State) ([]Prop, error) {
	if err := st.View.FilterColumn(e.Column, e.Query); err != nil {
		return nil, invalid(err)
	}
	return []Prop{PropFilterQuery}, nil
}

func (e PageChanged) apply(st *State) ([]Prop, error) {
	if err := st.View.SetPage(e.Page); err != nil {
		return nil, invalid(err)
	}
	return []Prop{PropPageCurrent}, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
}

// EventEnvelope es la forma JSON de un evento.
type EventEnvelope struct {
	Type     string             `json:"type" enums:"filter_changed,columns_selected,row_clicked,row_cleared,sort_changed,column_filter_changed,page_changed"`
	Filter   string             `json:"filter,omitempty"`
	Columns  []string           `json:"columns,omitempty"`
	Index    *int               `json:"index,omitempty"`
	SortBy   []dataview.SortKey `json:"sort_by,omitempty"`
	ColumnID string             `json:"column_id,omitempty"`
	Query    string             `json:"query,omitempty"`
	Page     *int               `json:"page,omitempty"`
}

func (e EventEnvelope) Decode() (Event, error) {
	switch strings.TrimSpace(e.Type) {
	case "filter_changed":
		return FilterChanged{Value: e.Filter}, nil
	case "columns_selected":
		return ColumnsSelected{Columns: e.Columns}, nil
	case "row_clicked":
		if e.Index == nil {
			return nil, fmt.Errorf("%w: row_clicked requires index", ErrInvalidEvent)
		}
		return RowClicked{Index: *e.Index}, nil
	case "row_cleared":
		return RowCleared{}, nil
	case "sort_changed":
		return SortChanged{SortBy: e.SortBy}, nil
	case "column_filter_changed":
		if strings.TrimSpace(e.ColumnID) == "" {
			return nil, fmt.Errorf("%w: column_filter_changed requires column_id", ErrInvalidEvent)
		}
		return ColumnFilterChanged{Column: e.ColumnID, Query: e.Query}, nil
	case "page_changed":
		if e.Page == nil {
			return nil, fmt.Errorf("%w: page_changed requires page", ErrInvalidEvent)
		}
		return PageChanged{Page: *e.Page}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
}
