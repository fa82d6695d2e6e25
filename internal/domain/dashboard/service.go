package dashboard

import (
	"context"
	"errors"
	"time"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/platform/logger"
)

// Deps es el contexto explícito del dashboard: se arma una vez al arrancar
// y se pasa a cada handler (sin estado global).
type Deps struct {
	Loader     *dataview.Loader
	Log        logger.Logger
	SessionTTL time.Duration
	PageSize   int
}

type Service struct {
	graph    *Graph
	sessions *Sessions
	loader   *dataview.Loader
	log      logger.Logger
	pageSize int
}

func NewService(d Deps) (*Service, error) {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	g, err := NewGraph(d.Loader, d.Log)
	if err != nil {
		return nil, err
	}
	return &Service{
		graph:    g,
		sessions: NewSessions(d.SessionTTL),
		loader:   d.Loader,
		log:      d.Log,
		pageSize: d.PageSize,
	}, nil
}

// Filters devuelve los nombres del selector.
func (s *Service) Filters() []string {
	return s.loader.Catalog().Names()
}

// Open crea una sesión y corre la pasada inicial con el filtro pedido (vacío => All).
// Si la lectura inicial falla no se registra la sesión.
func (s *Service) Open(ctx context.Context, filter string) (Snapshot, error) {
	st := NewState(s.pageSize)
	if _, err := s.graph.Dispatch(ctx, st, FilterChanged{Value: filter}); err != nil {
		// Una fila inicial sin coordenadas deja el mapa vacío, pero la sesión es usable.
		if !errors.Is(err, animals.ErrMissingCoordinates) {
			return Snapshot{}, err
		}
		s.log.Warn("initial row has no coordinates", map[string]any{"filter": st.View.Filter()})
	}

	sess := s.sessions.Create(st)
	s.log.Info("session opened", map[string]any{"session_id": sess.ID, "filter": st.View.Filter()})
	return newSnapshot(sess.ID, st), nil
}

func (s *Service) Dispatch(ctx context.Context, sessionID string, ev Event) (Update, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return Update{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.graph.Dispatch(ctx, sess.state, ev)
}

func (s *Service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return newSnapshot(sess.ID, sess.state), nil
}

func (s *Service) Table(ctx context.Context, sessionID string) (TablePage, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return TablePage{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return newTablePage(sess.state.View), nil
}

func (s *Service) Close(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.log.Info("session closed", map[string]any{"session_id": sessionID})
	return nil
}
