package dashboard

import (
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/charts"
	"shelter-dashboard/internal/domain/dataview"
)

// State es el estado de una sesión: el valor del selector, la tabla y las salidas
// derivadas de la última pasada.
type State struct {
	// FilterValue es el último filtro cargado con éxito; pendingFilter el pedido por el evento.
	FilterValue   string
	pendingFilter string
	View          *dataview.View

	Figure      charts.Histogram
	Styles      []charts.StyleRule
	MapChildren []charts.MapChild
}

func NewState(pageSize int) *State {
	return &State{
		View:   dataview.NewView(pageSize),
		Styles: []charts.StyleRule{},
	}
}

type MapOutput struct {
	Children []charts.MapChild `json:"children"`
}

type ColumnFilterView struct {
	ColumnID string `json:"column_id"`
	Query    string `json:"query"`
}

// TablePage es la ventana de la tabla que se muestra (página actual de los datos visibles).
type TablePage struct {
	Filter          string             `json:"filter"`
	Rows            []animals.Record   `json:"rows"`
	PageCurrent     int                `json:"page_current"`
	PageCount       int                `json:"page_count"`
	PageSize        int                `json:"page_size"`
	VisibleTotal    int                `json:"visible_total"`
	Total           int                `json:"total"`
	SortBy          []dataview.SortKey `json:"sort_by"`
	FilterQuery     []ColumnFilterView `json:"filter_query"`
	SelectedColumns []string           `json:"selected_columns"`
}

func newTablePage(v *dataview.View) TablePage {
	filters := v.ColumnFilters()
	fq := make([]ColumnFilterView, 0, len(filters))
	for _, f := range filters {
		fq = append(fq, ColumnFilterView{ColumnID: f.Column, Query: f.Query})
	}

	sortBy := v.SortKeys()
	if sortBy == nil {
		sortBy = []dataview.SortKey{}
	}
	cols := v.SelectedColumns()
	if cols == nil {
		cols = []string{}
	}

	return TablePage{
		Filter:          v.Filter(),
		Rows:            v.PageRows(),
		PageCurrent:     v.PageCurrent(),
		PageCount:       v.PageCount(),
		PageSize:        v.PageSize(),
		VisibleTotal:    len(v.Visible()),
		Total:           len(v.Records()),
		SortBy:          sortBy,
		FilterQuery:     fq,
		SelectedColumns: cols,
	}
}

// Update contiene solo las salidas recalculadas en una pasada.
type Update struct {
	Event     string                  `json:"event"`
	Ran       []string                `json:"callbacks"`
	Table     *TablePage              `json:"table,omitempty"`
	Selection *dataview.SelectionJSON `json:"selection,omitempty"`
	Figure    *charts.Histogram       `json:"figure,omitempty"`
	Styles    *[]charts.StyleRule     `json:"styles,omitempty"`
	Map       *MapOutput              `json:"map,omitempty"`

	// Errors lista salidas que no se pudieron calcular (p.ej. fila sin coordenadas).
	Errors []string `json:"errors,omitempty"`
}

// Snapshot es el estado completo de una sesión.
type Snapshot struct {
	SessionID string                 `json:"session_id"`
	Table     TablePage              `json:"table"`
	Selection dataview.SelectionJSON `json:"selection"`
	Figure    charts.Histogram       `json:"figure"`
	Styles    []charts.StyleRule     `json:"styles"`
	Map       MapOutput              `json:"map"`
}

func newSnapshot(id string, st *State) Snapshot {
	return Snapshot{
		SessionID: id,
		Table:     newTablePage(st.View),
		Selection: dataview.EncodeSelection(st.View.Selection()),
		Figure:    st.Figure,
		Styles:    st.Styles,
		Map:       MapOutput{Children: nonNilChildren(st.MapChildren)},
	}
}
