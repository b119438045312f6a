package domain

import "strings"

// Layer is the rank of an architectural layer inside a domain. Lower layers
// depend on higher ones, never the reverse.
type Layer int

const (
	Adapters Layer = iota
	UseCases
	Entities
)

func (l Layer) String() string {
	switch l {
	case Adapters:
		return "adapters"
	case UseCases:
		return "use-cases"
	case Entities:
		return "domain"
	}
	return "unknown"
}

var layerFolders = map[string]Layer{
	"adapters":  Adapters,
	"use-cases": UseCases,
	"domain":    Entities,
	"entities":  Entities,
}

// Layer returns the layer of p from the first folder below its domain.
func (s Scheme) Layer(p string) (Layer, bool) {
	loc, ok := s.Locate(p)
	if !ok {
		return 0, false
	}
	first, _, _ := strings.Cut(loc.Rest, "/")
	l, ok := layerFolders[first]
	return l, ok
}
