package charts

import (
	"fmt"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/dataview"
)

const (
	mapZoom      = 10
	mapWidth     = "1000px"
	mapHeight    = "500px"
	baseLayerID  = "base-layer-id"
	popupHeading = "Animal Name"
)

type Popup struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

type Marker struct {
	Position [2]float64 `json:"position"`
	Tooltip  string     `json:"tooltip"`
	Popup    Popup      `json:"popup"`
}

type MapStyle struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

// MapChild es el contenido del contenedor del mapa: un mapa con una capa base y un marker.
type MapChild struct {
	Center    [2]float64 `json:"center"`
	Zoom      int        `json:"zoom"`
	Style     MapStyle   `json:"style"`
	TileLayer string     `json:"tile_layer"`
	Markers   []Marker   `json:"markers"`
}

// BuildMap arma el mapa de la fila seleccionada.
// Sin selección, sin datos o con índice fuera de rango no hay hijos (nil, nil).
// Un registro sin coordenadas devuelve animals.ErrMissingCoordinates.
func BuildMap(visible []animals.Record, sel dataview.Selection) ([]MapChild, error) {
	var index int
	switch s := sel.(type) {
	case dataview.RowSelected:
		index = s.Index
	case dataview.NoSelection, nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported selection %T", sel)
	}

	if len(visible) == 0 || index < 0 || index >= len(visible) {
		return nil, nil
	}

	r := visible[index]
	lat, lon, err := r.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("map row %d: %w", index, err)
	}

	pos := [2]float64{lat, lon}
	return []MapChild{{
		Center:    pos,
		Zoom:      mapZoom,
		Style:     MapStyle{Width: mapWidth, Height: mapHeight},
		TileLayer: baseLayerID,
		Markers: []Marker{{
			Position: pos,
			Tooltip:  r.Breed,
			Popup:    Popup{Heading: popupHeading, Text: r.Name},
		}},
	}}, nil
}
