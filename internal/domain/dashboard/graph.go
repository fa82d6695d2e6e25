package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/charts"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/platform/logger"
)

// Prop identifica una propiedad del árbol de componentes ("componente.propiedad").
type Prop string

const (
	PropFilterValue     Prop = "filter-type.value"
	PropTableData       Prop = "datatable-id.data"
	PropSortBy          Prop = "datatable-id.sort_by"
	PropFilterQuery     Prop = "datatable-id.filter_query"
	PropPageCurrent     Prop = "datatable-id.page_current"
	PropSelectedColumns Prop = "datatable-id.selected_columns"
	PropDerivedData     Prop = "datatable-id.derived_virtual_data"
	PropSelectedRow     Prop = "datatable-id.derived_virtual_selected_rows"
	PropViewport        Prop = "datatable-id.derived_viewport_data"
	PropStyles          Prop = "datatable-id.style_data_conditional"
	PropFigure          Prop = "graph-id.figure"
	PropMapChildren     Prop = "map-id.children"
)

// Callback es una función de update con inputs/outputs declarados.
type Callback struct {
	Name    string
	Inputs  []Prop
	Outputs []Prop
	Run     func(ctx context.Context, st *State, up *Update) error
}

// outputError es un fallo que solo invalida las salidas de su callback: la pasada sigue
// y el Update parcial se devuelve junto con el error.
type outputError struct {
	err error
}

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// Graph ejecuta callbacks en orden de dependencias: cada evento hace una sola pasada
// y cada callback corre como mucho una vez.
type Graph struct {
	callbacks []Callback
	log       logger.Logger
}

func NewGraph(loader *dataview.Loader, log logger.Logger) (*Graph, error) {
	return newGraph(defaultCallbacks(loader), log)
}

func newGraph(cbs []Callback, log logger.Logger) (*Graph, error) {
	if log == nil {
		log = logger.Nop()
	}
	ordered, err := topoSort(cbs)
	if err != nil {
		return nil, err
	}
	return &Graph{callbacks: ordered, log: log}, nil
}

// Names devuelve los callbacks en orden de ejecución.
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.callbacks))
	for _, cb := range g.callbacks {
		out = append(out, cb.Name)
	}
	return out
}

// Dispatch aplica el evento al estado y propaga los cambios.
// El caller debe tener el lock de la sesión.
func (g *Graph) Dispatch(ctx context.Context, st *State, ev Event) (Update, error) {
	changed, err := ev.apply(st)
	if err != nil {
		return Update{}, err
	}

	dirty := make(map[Prop]bool, len(changed))
	for _, p := range changed {
		dirty[p] = true
	}

	up := Update{Event: ev.Name()}
	var partial error
	for _, cb := range g.callbacks {
		if !slices.ContainsFunc(cb.Inputs, func(p Prop) bool { return dirty[p] }) {
			continue
		}

		if err := cb.Run(ctx, st, &up); err != nil {
			g.log.Warn("callback failed", map[string]any{
				"callback": cb.Name,
				"event":    ev.Name(),
				"err":      err,
			})
			var oe *outputError
			if !errors.As(err, &oe) {
				return up, fmt.Errorf("%s: %w", cb.Name, err)
			}
			up.Errors = append(up.Errors, cb.Name+": "+oe.Error())
			if partial == nil {
				partial = fmt.Errorf("%s: %w", cb.Name, oe.err)
			}
		}
		up.Ran = append(up.Ran, cb.Name)
		for _, p := range cb.Outputs {
			dirty[p] = true
		}
	}

	g.log.Debug("event dispatched", map[string]any{"event": ev.Name(), "callbacks": up.Ran})
	return up, partial
}

// topoSort ordena por dependencias (Kahn); a igual nivel respeta el orden declarado.
func topoSort(cbs []Callback) ([]Callback, error) {
	producers := make(map[Prop][]int)
	for i, cb := range cbs {
		for _, p := range cb.Outputs {
			producers[p] = append(producers[p], i)
		}
	}

	indegree := make([]int, len(cbs))
	edges := make([][]int, len(cbs))
	for j, cb := range cbs {
		for _, in := range cb.Inputs {
			for _, i := range producers[in] {
				if i == j {
					return nil, fmt.Errorf("callback %q depends on its own output %q", cb.Name, in)
				}
				edges[i] = append(edges[i], j)
				indegree[j]++
			}
		}
	}

	out := make([]Callback, 0, len(cbs))
	done := make([]bool, len(cbs))
	for len(out) < len(cbs) {
		next := -1
		for i := range cbs {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("callback graph has a cycle")
		}
		done[next] = true
		out = append(out, cbs[next])
		for _, j := range edges[next] {
			indegree[j]--
		}
	}
	return out, nil
}

func defaultCallbacks(loader *dataview.Loader) []Callback {
	return []Callback{
		{
			// filter-type.value -> datatable-id.data
			Name:    "update_dashboard",
			Inputs:  []Prop{PropFilterValue},
			Outputs: []Prop{PropTableData, PropSortBy, PropFilterQuery, PropPageCurrent, PropSelectedColumns, PropSelectedRow},
			Run: func(ctx context.Context, st *State, up *Update) error {
				p, records, err := loader.Load(ctx, st.pendingFilter)
				if err != nil {
					return err
				}
				// el selector solo cambia si la lectura salió bien
				st.FilterValue = st.pendingFilter
				st.View.Replace(p, records)
				return nil
			},
		},
		{
			// La tabla recalcula sus datos derivados al cambiar data/orden/filtros;
			// acá solo se publica el cambio.
			Name:    "derive_virtual_data",
			Inputs:  []Prop{PropTableData, PropSortBy, PropFilterQuery},
			Outputs: []Prop{PropDerivedData, PropSelectedRow},
			Run: func(ctx context.Context, st *State, up *Update) error {
				return nil
			},
		},
		{
			Name:    "update_styles",
			Inputs:  []Prop{PropSelectedColumns},
			Outputs: []Prop{PropStyles},
			Run: func(ctx context.Context, st *State, up *Update) error {
				st.Styles = charts.BuildStyles(st.View.SelectedColumns())
				styles := st.Styles
				up.Styles = &styles
				return nil
			},
		},
		{
			Name:    "update_graphs",
			Inputs:  []Prop{PropDerivedData, PropFilterValue},
			Outputs: []Prop{PropFigure},
			Run: func(ctx context.Context, st *State, up *Update) error {
				st.Figure = charts.BuildHistogram(st.View.Visible(), st.View.Filter(), st.View.IsUnconditional())
				fig := st.Figure
				up.Figure = &fig
				return nil
			},
		},
		{
			Name:    "render_table",
			Inputs:  []Prop{PropDerivedData, PropPageCurrent, PropSelectedRow},
			Outputs: []Prop{PropViewport},
			Run: func(ctx context.Context, st *State, up *Update) error {
				page := newTablePage(st.View)
				up.Table = &page
				sel := dataview.EncodeSelection(st.View.Selection())
				up.Selection = &sel
				return nil
			},
		},
		{
			Name:    "update_map",
			Inputs:  []Prop{PropDerivedData, PropSelectedRow},
			Outputs: []Prop{PropMapChildren},
			Run: func(ctx context.Context, st *State, up *Update) error {
				children, err := charts.BuildMap(st.View.Visible(), st.View.Selection())
				if err != nil {
					// mapa vacío; tabla y figura de esta pasada siguen valiendo
					st.MapChildren = nil
					up.Map = &MapOutput{Children: []charts.MapChild{}}
					if errors.Is(err, animals.ErrMissingCoordinates) {
						return &outputError{err: err}
					}
					return err
				}
				st.MapChildren = children
				up.Map = &MapOutput{Children: nonNilChildren(children)}
				return nil
			},
		},
	}
}

func nonNilChildren(c []charts.MapChild) []charts.MapChild {
	if c == nil {
		return []charts.MapChild{}
	}
	return c
}
