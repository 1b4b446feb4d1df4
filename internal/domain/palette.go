package domain

// Palette is a named, ordered collection of standalone colors. Colors are
// stored as "#rrggbb" strings and have no relationship to each other.
type Palette struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}
