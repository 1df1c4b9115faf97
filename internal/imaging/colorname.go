package imaging

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// namedColor pairs a reference hex value with the human-readable name
// used in shopping search queries.
type namedColor struct {
	Hex  string
	Name string
}

// namedColors is the reference palette for naming arbitrary colors.
// Order matters for deterministic tie-breaking in nearest-color lookup.
var namedColors = []namedColor{
	{"#FFFFFF", "white"},
	{"#000000", "black"},
	{"#808080", "grey"},
	{"#C0C0C0", "silver"},
	{"#FF0000", "red"},
	{"#00FF00", "green"},
	{"#0000FF", "blue"},
	{"#FFFF00", "yellow"},
	{"#FFA500", "orange"},
	{"#800080", "purple"},
	{"#FFC0CB", "pink"},
	{"#A52A2A", "brown"},
	{"#8B4513", "brown"},
	{"#D2691E", "brown"},
	{"#F5DEB3", "beige"},
	{"#DEB887", "tan"},
	{"#2C3E50", "navy"},
	{"#1ABC9C", "teal"},
	{"#E74C3C", "red"},
	{"#3498DB", "blue"},
	{"#2ECC71", "green"},
	{"#F39C12", "gold"},
	{"#9B59B6", "purple"},
	{"#34495E", "charcoal"},
	{"#ECF0F1", "off-white"},
	{"#95A5A6", "grey"},
}

// ColorName resolves a hex color to a human-readable color name.
//
// Exact matches against the reference palette are returned directly.
// Any other valid hex color maps to the perceptually nearest reference
// color by CIE Lab distance, so "#FAFAFA" names as "white" and
// "#8E44AD" as "purple". Unparsable input returns "neutral".
func ColorName(hex string) string {
	h := strings.ToUpper(strings.TrimSpace(hex))
	if h == "" {
		return "neutral"
	}
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}

	for _, ref := range namedColors {
		if ref.Hex == h {
			return ref.Name
		}
	}

	c, err := colorful.Hex(h)
	if err != nil {
		return "neutral"
	}

	best := "neutral"
	bestDist := -1.0
	for _, ref := range namedColors {
		rc, err := colorful.Hex(ref.Hex)
		if err != nil {
			continue
		}
		if d := c.DistanceLab(rc); bestDist < 0 || d < bestDist {
			bestDist = d
			best = ref.Name
		}
	}
	return best
}
