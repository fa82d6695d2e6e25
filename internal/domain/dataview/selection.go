package dataview

// Selection es NoSelection o RowSelected. Los consumidores hacen type switch sobre ambos casos.
type Selection interface {
	isSelection()
}

type NoSelection struct{}

// RowSelected apunta a un índice de los datos visibles (derived virtual data).
type RowSelected struct {
	Index int
}

func (NoSelection) isSelection() {}
func (RowSelected) isSelection() {}

// Revalidate devuelve NoSelection si el índice ya no existe en un set de n filas.
func Revalidate(s Selection, n int) Selection {
	switch sel := s.(type) {
	case RowSelected:
		if sel.Index < 0 || sel.Index >= n {
			return NoSelection{}
		}
		return sel
	default:
		return NoSelection{}
	}
}

// SelectionJSON es la forma serializada: {"state":"none"} o {"state":"row","index":3}.
type SelectionJSON struct {
	State string `json:"state"`
	Index *int   `json:"index,omitempty"`
}

func EncodeSelection(s Selection) SelectionJSON {
	switch sel := s.(type) {
	case RowSelected:
		i := sel.Index
		return SelectionJSON{State: "row", Index: &i}
	default:
		return SelectionJSON{State: "none"}
	}
}
