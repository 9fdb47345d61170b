package venue

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NeutralColor is the color applied when the input is missing or unparseable.
const NeutralColor = "#999999"

// CanonicalColor normalizes a color string to lower-case #rrggbb form.
// #rgb is expanded, #rrggbbaa is truncated to drop the alpha channel, and
// anything that still fails to parse maps to NeutralColor.
func CanonicalColor(in string) string {
	s := strings.TrimSpace(strings.ToLower(in))
	if s == "" {
		return NeutralColor
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	switch len(s) {
	case 4: // #rgb
		s = fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
	case 9: // #rrggbbaa
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return NeutralColor
	}
	return c.Hex()
}

// FallbackColor deterministically generates a muted color for a synthesized
// category, keyed by its id, so unknown categories stay visually distinct but
// never clash with the curated palette.
func FallbackColor(id string) string {
	if id == "" {
		return NeutralColor
	}
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	hue := float64(h % 360)
	return colorful.Hsl(hue, 0.30, 0.55).Clamped().Hex()
}
