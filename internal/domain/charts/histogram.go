package charts

import (
	"cmp"
	"fmt"
	"slices"

	"shelter-dashboard/internal/domain/animals"
)

// Con el filtro "All" hay demasiadas razas; el eje x se limita a ~10 categorías.
var unconditionalXRange = [2]float64{-0.5, 10.5}

const (
	histogramBins = 8
	categoryOrder = "total descending"
)

type Bin struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Histogram es la figura que consume el front (forma compatible con un histograma de plotly).
type Histogram struct {
	Title         string      `json:"title"`
	XField        string      `json:"x"`
	NBins         int         `json:"nbins"`
	TextAuto      bool        `json:"text_auto"`
	CategoryOrder string      `json:"category_order"`
	XRange        *[2]float64 `json:"x_range"`
	Bins          []Bin       `json:"bins"`
}

// BuildHistogram cuenta razas sobre los datos visibles, de mayor a menor frecuencia
// (empates por nombre). unconditional fija el rango del eje x.
func BuildHistogram(visible []animals.Record, filterName string, unconditional bool) Histogram {
	counts := make(map[string]int)
	for _, r := range visible {
		counts[r.Breed]++
	}

	bins := make([]Bin, 0, len(counts))
	for breed, n := range counts {
		bins = append(bins, Bin{Category: breed, Count: n})
	}
	slices.SortFunc(bins, func(a, b Bin) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	h := Histogram{
		Title:         fmt.Sprintf("%s Candidates", filterName),
		XField:        animals.ColBreed,
		NBins:         histogramBins,
		TextAuto:      true,
		CategoryOrder: categoryOrder,
		Bins:          bins,
	}
	if unconditional {
		r := unconditionalXRange
		h.XRange = &r
	}
	return h
}
