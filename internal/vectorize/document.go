package vectorize

import (
	"sort"
)

// FillRule selects how overlapping subpaths of a VectorPath are filled.
type FillRule int

const (
	// NonZero fills every point with a non-zero winding number.
	NonZero FillRule = iota

	// EvenOdd alternates filled and unfilled between nested subpaths, which
	// is how holes are rendered.
	EvenOdd
)

// String returns the SVG attribute value for the rule.
func (f FillRule) String() string {
	switch f {
	case EvenOdd:
		return "evenodd"
	default:
		return "nonzero"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f FillRule) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// VectorPath is one filled region: the exterior subpath first, then one
// subpath per hole.
type VectorPath struct {
	Subpaths    []Ring   `json:"subpaths"`
	FillColor   string   `json:"fill"`
	StrokeColor string   `json:"stroke"`
	StrokeWidth float64  `json:"stroke_width"`
	FillRule    FillRule `json:"fill_rule"`
}

// Document is the vector output: a canvas and its paths in paint order.
// Later paths are painted on top of earlier ones.
type Document struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Paths  []VectorPath `json:"paths"`
}

// Assemble orders regions by area, largest first, and converts each into a
// VectorPath. Regions of equal area keep their discovery order, so nested
// regions are always painted after the region that encloses them.
//
// strokeWidth is used as given; callers pass it already scaled to output
// units.
func Assemble(regions []ScaledRegion, width, height int, strokeWidth float64) *Document {
	ordered := make([]ScaledRegion, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Area != ordered[j].Area {
			return ordered[i].Area > ordered[j].Area
		}
		return ordered[i].seq < ordered[j].seq
	})

	doc := &Document{
		Width:  width,
		Height: height,
		Paths:  make([]VectorPath, 0, len(ordered)),
	}
	for _, r := range ordered {
		hex := r.Color.Hex()
		p := VectorPath{
			Subpaths:    make([]Ring, 0, 1+len(r.Holes)),
			FillColor:   hex,
			StrokeColor: hex,
			StrokeWidth: strokeWidth,
			FillRule:    NonZero,
		}
		p.Subpaths = append(p.Subpaths, r.Exterior)
		p.Subpaths = append(p.Subpaths, r.Holes...)
		if len(r.Holes) > 0 {
			p.FillRule = EvenOdd
		}
		doc.Paths = append(doc.Paths, p)
	}
	return doc
}
