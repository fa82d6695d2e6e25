package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Get("/filters", listFiltersHandler(svc))
	r.Get("/columns", listColumnsHandler())

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", openSessionHandler(svc, log))
		sr.Get("/{sessionID}", getSessionHandler(svc, log))
		sr.Delete("/{sessionID}", closeSessionHandler(svc, log))

		sr.Get("/{sessionID}/table", getTableHandler(svc, log))
		sr.Post("/{sessionID}/events", dispatchEventHandler(svc, log))
	})
}

// openSessionRequest es el cuerpo (opcional) para abrir una sesión.
type openSessionRequest struct {
	Filter string `json:"filter" enums:"Water Rescue,Mountain/Wilderness,Disaster/Individual,All"`
}

type filtersResponse struct {
	Filters []string `json:"filters"`
	Default string   `json:"default"`
}

// listFiltersHandler godoc
// @Summary Listar filtros
// @Description Devuelve los filtros del selector en orden. Un filtro desconocido se resuelve a `All`.
// @Tags dashboard
// @Produce json
// @Success 200 {object} filtersResponse
// @Router /filters [get]
func listFiltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, filtersResponse{
			Filters: svc.Filters(),
			Default: "All",
		})
	}
}

// listColumnsHandler godoc
// @Summary Listar columnas de la tabla
// @Tags dashboard
// @Produce json
// @Success 200 {array} animals.Column
// @Router /columns [get]
func listColumnsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, animals.Columns())
	}
}

// openSessionHandler godoc
// @Summary Abrir sesión de dashboard
// @Description Crea una sesión, carga el filtro pedido (default All) y devuelve el estado completo.
// @Tags sessions
// @Accept json
// @Produce json
// @Param payload body openSessionRequest false "Filtro inicial"
// @Success 201 {object} Snapshot
// @Failure 400 {string} string "invalid json"
// @Failure 500 {string} string "store error"
// @Router /sessions [post]
func openSessionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openSessionRequest
		// body opcional: vacío => filtro default
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		snap, err := svc.Open(r.Context(), req.Filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	}
}

// getSessionHandler godoc
// @Summary Estado completo de la sesión
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} Snapshot
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// getTableHandler godoc
// @Summary Página actual de la tabla
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} TablePage
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/table [get]
func getTableHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Table(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// dispatchEventHandler godoc
// @Summary Enviar evento de interacción
// @Description Aplica un evento (cambio de filtro, selección de fila/columnas, orden, filtro por columna, página) y devuelve solo las salidas recalculadas.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body EventEnvelope true "Evento"
// @Success 200 {object} Update
// @Failure 400 {string} string "invalid json / evento inválido"
// @Failure 404 {string} string "session not found"
// @Failure 422 {object} Update "fila sin coordenadas: salidas parciales con errors"
// @Failure 500 {string} string "store error"
// @Router /sessions/{sessionID}/events [post]
func dispatchEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var env EventEnvelope
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&env); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ev, err := env.Decode()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		up, err := svc.Dispatch(r.Context(), chi.URLParam(r, "sessionID"), ev)
		if errors.Is(err, animals.ErrMissingCoordinates) {
			// el evento ya se aplicó: el cliente recibe todo lo recalculado, con el mapa vacío
			writeJSON(w, http.StatusUnprocessableEntity, up)
			return
		}
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, up)
	}
}

// closeSessionHandler godoc
// @Summary Cerrar sesión
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func closeSessionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, animals.ErrMissingCoordinates):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Error("request failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"path":       r.URL.Path,
			"err":        err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
