package charts

const highlightColor = "#D2F3FF"

type StyleCondition struct {
	ColumnID string `json:"column_id"`
}

// StyleRule es un estilo condicional por columna para la tabla.
type StyleRule struct {
	If              StyleCondition `json:"if"`
	BackgroundColor string         `json:"background_color"`
}

// BuildStyles resalta exactamente las columnas seleccionadas. Sin selección => sin reglas.
func BuildStyles(selectedColumns []string) []StyleRule {
	out := make([]StyleRule, 0, len(selectedColumns))
	for _, id := range selectedColumns {
		out = append(out, StyleRule{
			If:              StyleCondition{ColumnID: id},
			BackgroundColor: highlightColor,
		})
	}
	return out
}
