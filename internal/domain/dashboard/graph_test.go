package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/charts"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/domain/queries"
)

type fakeRepo struct {
	records []animals.Record
	err     error
	reads   int
}

func (r *fakeRepo) Read(ctx context.Context, p queries.Predicate) ([]animals.Record, error) {
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]animals.Record, 0)
	for _, rec := range r.records {
		if p.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func shelterFixture() []animals.Record {
	return []animals.Record{
		{AnimalID: "A1", AnimalType: "Dog", Breed: "Labrador Retriever", Name: "Luna", SexUponOutcome: animals.SexIntactFemale, AgeWeeks: 50, Latitude: animals.Float(30.6), Longitude: animals.Float(-97.4)},
		{AnimalID: "A2", AnimalType: "Dog", Breed: "Poodle", Name: "Max", SexUponOutcome: animals.SexIntactFemale, AgeWeeks: 50, Latitude: animals.Float(30.7), Longitude: animals.Float(-97.5)},
		{AnimalID: "A3", AnimalType: "Dog", Breed: "Rottweiler", Name: "Rex", SexUponOutcome: animals.SexIntactMale, AgeWeeks: 100, Latitude: animals.Float(30.8), Longitude: animals.Float(-97.6)},
		{AnimalID: "A4", AnimalType: "Dog", Breed: "Poodle", Name: "Nube", SexUponOutcome: animals.SexSpayedFemale, AgeWeeks: 300},
		{AnimalID: "C1", AnimalType: "Cat", Breed: "Siamese", Name: "Michi", Latitude: animals.Float(30.1), Longitude: animals.Float(-97.1)},
	}
}

func newTestGraph(t *testing.T, repo *fakeRepo) *Graph {
	t.Helper()
	g, err := NewGraph(dataview.NewLoader(repo, queries.NewCatalog(nil), nil), nil)
	require.NoError(t, err)
	return g
}

func TestGraph_ExecutionOrder(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{})
	assert.Equal(t, []string{
		"update_dashboard",
		"derive_virtual_data",
		"update_styles",
		"update_graphs",
		"render_table",
		"update_map",
	}, g.Names())
}

func TestGraph_FilterChangedRunsEveryCallbackOnce(t *testing.T) {
	repo := &fakeRepo{records: shelterFixture()}
	g := newTestGraph(t, repo)
	st := NewState(10)

	up, err := g.Dispatch(context.Background(), st, FilterChanged{Value: "All"})
	require.NoError(t, err)

	assert.Equal(t, g.Names(), up.Ran)
	assert.Equal(t, 1, repo.reads)
	require.NotNil(t, up.Table)
	assert.Equal(t, 4, up.Table.Total, "All means all dogs")
	require.NotNil(t, up.Figure)
	assert.Equal(t, "All Candidates", up.Figure.Title)
	require.NotNil(t, up.Figure.XRange)
	require.NotNil(t, up.Map)
	require.Len(t, up.Map.Children, 1, "row 0 is preselected")
	assert.Equal(t, "Labrador Retriever", up.Map.Children[0].Markers[0].Tooltip)
	require.NotNil(t, up.Styles)
	assert.Empty(t, *up.Styles)
}

func TestGraph_WaterRescueScenario(t *testing.T) {
	repo := &fakeRepo{records: shelterFixture()}
	g := newTestGraph(t, repo)
	st := NewState(10)

	up, err := g.Dispatch(context.Background(), st, FilterChanged{Value: queries.FilterWaterRescue})
	require.NoError(t, err)

	require.Len(t, up.Table.Rows, 1)
	assert.Equal(t, "A1", up.Table.Rows[0].AnimalID)
	assert.Equal(t, "Water Rescue Candidates", up.Figure.Title)
	assert.Nil(t, up.Figure.XRange)
}

func TestGraph_RowClickedOnlyTouchesTableAndMap(t *testing.T) {
	repo := &fakeRepo{records: shelterFixture()}
	g := newTestGraph(t, repo)
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{Value: "All"})
	require.NoError(t, err)

	up, err := g.Dispatch(ctx, st, RowClicked{Index: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"render_table", "update_map"}, up.Ran)
	assert.Nil(t, up.Figure)
	assert.Nil(t, up.Styles)
	assert.Equal(t, 1, repo.reads, "selection must not re-query the store")
	require.Len(t, up.Map.Children, 1)
	assert.Equal(t, [2]float64{30.8, -97.6}, up.Map.Children[0].Markers[0].Position)
	assert.Equal(t, "Rex", up.Map.Children[0].Markers[0].Popup.Text)
	require.NotNil(t, up.Selection)
	assert.Equal(t, "row", up.Selection.State)
}

func TestGraph_ColumnsSelectedOnlyRestyles(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{records: shelterFixture()})
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{})
	require.NoError(t, err)

	up, err := g.Dispatch(ctx, st, ColumnsSelected{Columns: []string{animals.ColBreed}})
	require.NoError(t, err)
	assert.Equal(t, []string{"update_styles"}, up.Ran)
	require.Len(t, *up.Styles, 1)
	assert.Equal(t, animals.ColBreed, (*up.Styles)[0].If.ColumnID)

	up, err = g.Dispatch(ctx, st, ColumnsSelected{})
	require.NoError(t, err)
	assert.Empty(t, *up.Styles)
}

func TestGraph_ColumnFilterDropsStaleSelection(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{records: shelterFixture()})
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{Value: "All"})
	require.NoError(t, err)
	_, err = g.Dispatch(ctx, st, RowClicked{Index: 2})
	require.NoError(t, err)

	up, err := g.Dispatch(ctx, st, ColumnFilterChanged{Column: animals.ColBreed, Query: "poodle"})
	require.NoError(t, err)

	assert.Equal(t, []string{"derive_virtual_data", "update_graphs", "render_table", "update_map"}, up.Ran)
	assert.Equal(t, "none", up.Selection.State)
	assert.Empty(t, up.Map.Children)
	require.Len(t, up.Figure.Bins, 1)
	assert.Equal(t, charts.Bin{Category: "Poodle", Count: 2}, up.Figure.Bins[0])
}

func TestGraph_MissingCoordinatesSurfaceAsError(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{records: shelterFixture()})
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{Value: "All"})
	require.NoError(t, err)

	up, err := g.Dispatch(ctx, st, RowClicked{Index: 3})
	require.ErrorIs(t, err, animals.ErrMissingCoordinates)
	assert.Equal(t, []string{"render_table", "update_map"}, up.Ran)
	require.NotNil(t, up.Table)
	require.NotNil(t, up.Selection)
	assert.Equal(t, "row", up.Selection.State)
	require.NotNil(t, up.Map)
	assert.Empty(t, up.Map.Children)
	require.Len(t, up.Errors, 1)
	assert.Contains(t, up.Errors[0], "A4")
	assert.Empty(t, st.MapChildren)
}

func TestGraph_SortMovingRowWithoutCoordinatesKeepsOtherOutputs(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{records: shelterFixture()})
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{Value: "All"})
	require.NoError(t, err)

	// A4 (300 semanas, sin coordenadas) pasa a la fila 0, que sigue seleccionada
	up, err := g.Dispatch(ctx, st, SortChanged{SortBy: []dataview.SortKey{
		{ColumnID: animals.ColAgeWeeks, Direction: dataview.SortDesc},
	}})
	require.ErrorIs(t, err, animals.ErrMissingCoordinates)

	assert.Equal(t, []string{"derive_virtual_data", "update_graphs", "render_table", "update_map"}, up.Ran)
	require.NotNil(t, up.Table)
	assert.Equal(t, "A4", up.Table.Rows[0].AnimalID)
	require.Len(t, up.Table.SortBy, 1)
	require.NotNil(t, up.Figure)
	assert.Equal(t, "All Candidates", up.Figure.Title)
	require.NotNil(t, up.Selection)
	require.NotNil(t, up.Selection.Index)
	assert.Equal(t, 0, *up.Selection.Index)
	require.NotNil(t, up.Map)
	assert.Empty(t, up.Map.Children)
	assert.Len(t, up.Errors, 1)

	// volver a una fila con coordenadas limpia el error
	up, err = g.Dispatch(ctx, st, RowClicked{Index: 1})
	require.NoError(t, err)
	assert.Empty(t, up.Errors)
	require.Len(t, up.Map.Children, 1)
}

func TestGraph_FailedReloadKeepsPreviousFilter(t *testing.T) {
	repo := &fakeRepo{records: shelterFixture()}
	g := newTestGraph(t, repo)
	st := NewState(10)
	ctx := context.Background()

	_, err := g.Dispatch(ctx, st, FilterChanged{Value: "All"})
	require.NoError(t, err)

	repo.err = errors.New("connection reset")
	_, err = g.Dispatch(ctx, st, FilterChanged{Value: queries.FilterWaterRescue})
	require.Error(t, err)

	assert.Equal(t, "All", st.FilterValue)
	assert.Equal(t, st.FilterValue, st.View.Filter())
	assert.Len(t, st.View.Records(), 4)
}

func TestGraph_InvalidEventDoesNotRunCallbacks(t *testing.T) {
	g := newTestGraph(t, &fakeRepo{records: shelterFixture()})
	st := NewState(10)

	up, err := g.Dispatch(context.Background(), st, RowClicked{Index: 0})
	require.ErrorIs(t, err, ErrInvalidEvent)
	require.ErrorIs(t, err, dataview.ErrInvalidRow)
	assert.Empty(t, up.Ran)
}

func TestGraph_StoreFailureStopsPass(t *testing.T) {
	boom := errors.New("no reachable servers")
	g := newTestGraph(t, &fakeRepo{err: boom})

	up, err := g.Dispatch(context.Background(), NewState(10), FilterChanged{Value: "All"})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, up.Ran)
}

func TestTopoSort_DetectsCycle(t *testing.T) {
	noop := func(ctx context.Context, st *State, up *Update) error { return nil }
	_, err := newGraph([]Callback{
		{Name: "a", Inputs: []Prop{"x"}, Outputs: []Prop{"y"}, Run: noop},
		{Name: "b", Inputs: []Prop{"y"}, Outputs: []Prop{"x"}, Run: noop},
	}, nil)
	assert.Error(t, err)

	_, err = newGraph([]Callback{
		{Name: "self", Inputs: []Prop{"x"}, Outputs: []Prop{"x"}, Run: noop},
	}, nil)
	assert.Error(t, err)
}

func TestEventEnvelope_Decode(t *testing.T) {
	idx := 3
	ev, err := EventEnvelope{Type: "row_clicked", Index: &idx}.Decode()
	require.NoError(t, err)
	assert.Equal(t, RowClicked{Index: 3}, ev)

	_, err = EventEnvelope{Type: "row_clicked"}.Decode()
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = EventEnvelope{Type: "page_changed"}.Decode()
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = EventEnvelope{Type: "explode"}.Decode()
	assert.ErrorIs(t, err, ErrInvalidEvent)

	ev, err = EventEnvelope{Type: "filter_changed", Filter: "Mountain/Wilderness"}.Decode()
	require.NoError(t, err)
	assert.Equal(t, FilterChanged{Value: "Mountain/Wilderness"}, ev)
}
