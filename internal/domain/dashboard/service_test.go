package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/domain/queries"
)

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	svc, err := NewService(Deps{
		Loader:     dataview.NewLoader(repo, queries.NewCatalog(nil), nil),
		SessionTTL: time.Minute,
		PageSize:   10,
	})
	require.NoError(t, err)
	return svc
}

func TestService_OpenStoreFailureRegistersNothing(t *testing.T) {
	boom := errors.New("no reachable servers")
	svc := newTestService(t, &fakeRepo{err: boom})

	_, err := svc.Open(context.Background(), "All")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, svc.sessions.Len())
}

func TestService_OpenToleratesInitialRowWithoutCoordinates(t *testing.T) {
	recs := shelterFixture()
	// A4 (sin coordenadas) primero: queda preseleccionada
	recs[0], recs[3] = recs[3], recs[0]
	svc := newTestService(t, &fakeRepo{records: recs})

	snap, err := svc.Open(context.Background(), "All")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.sessions.Len())
	assert.Empty(t, snap.Map.Children)
	assert.Equal(t, "A4", snap.Table.Rows[0].AnimalID)
}

func TestService_DispatchReturnsPartialUpdate(t *testing.T) {
	svc := newTestService(t, &fakeRepo{records: shelterFixture()})
	ctx := context.Background()

	snap, err := svc.Open(ctx, "All")
	require.NoError(t, err)

	up, err := svc.Dispatch(ctx, snap.SessionID, RowClicked{Index: 3})
	require.Error(t, err)
	require.NotNil(t, up.Table)
	assert.NotEmpty(t, up.Errors)

	page, err := svc.Table(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
}
