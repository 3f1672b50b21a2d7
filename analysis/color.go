/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package analysis

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// colorDistance computes the perceptual (CIEDE2000) distance between two
// color token values. Returns false when either value cannot be parsed.
func colorDistance(before, after any) (float64, bool) {
	b, ok := parseColor(before)
	if !ok {
		return 0, false
	}
	a, ok := parseColor(after)
	if !ok {
		return 0, false
	}
	return b.DistanceCIEDE2000(a), true
}

// parseColor accepts string colors (hex, named, any CSS form) and
// structured srgb color objects.
func parseColor(value any) (colorful.Color, bool) {
	switch v := value.(type) {
	case string:
		parsed, err := csscolorparser.Parse(v)
		if err != nil {
			return colorful.Color{}, false
		}
		return colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B}, true
	case map[string]any:
		return parseStructuredColor(v)
	default:
		return colorful.Color{}, false
	}
}

// parseStructuredColor handles {colorSpace: "srgb", components: [r,g,b]}
// values. Other color spaces are out of reach without a conversion
// matrix; they report unparseable.
func parseStructuredColor(v map[string]any) (colorful.Color, bool) {
	if space, ok := v["colorSpace"].(string); !ok || space != "srgb" {
		return colorful.Color{}, false
	}
	components, ok := v["components"].([]any)
	if !ok || len(components) < 3 {
		return colorful.Color{}, false
	}
	channels := make([]float64, 3)
	for i := range 3 {
		f, ok := toFloat(components[i])
		if !ok {
			return colorful.Color{}, false
		}
		channels[i] = f
	}
	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
