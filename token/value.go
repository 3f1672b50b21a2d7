/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides DTCG design token AST types.
package token

// Type identifies a DTCG token value type.
type Type string

// Token value types defined by the DTCG specification.
const (
	TypeColor       Type = "color"
	TypeDimension   Type = "dimension"
	TypeDuration    Type = "duration"
	TypeNumber      Type = "number"
	TypeFontFamily  Type = "fontFamily"
	TypeFontWeight  Type = "fontWeight"
	TypeCubicBezier Type = "cubicBezier"
	TypeStrokeStyle Type = "strokeStyle"
	TypeBorder      Type = "border"
	TypeTransition  Type = "transition"
	TypeShadow      Type = "shadow"
	TypeGradient    Type = "gradient"
	TypeTypography  Type = "typography"
)

var knownTypes = map[Type]bool{
	TypeColor:       true,
	TypeDimension:   true,
	TypeDuration:    true,
	TypeNumber:      true,
	TypeFontFamily:  true,
	TypeFontWeight:  true,
	TypeCubicBezier: true,
	TypeStrokeStyle: true,
	TypeBorder:      true,
	TypeTransition:  true,
	TypeShadow:      true,
	TypeGradient:    true,
	TypeTypography:  true,
}

// Known returns true if t is one of the types defined by the DTCG spec.
func (t Type) Known() bool {
	return knownTypes[t]
}

// String returns the type tag as written in token files.
func (t Type) String() string {
	return string(t)
}

// Types returns all known type tags.
func Types() []Type {
	return []Type{
		TypeColor, TypeDimension, TypeDuration, TypeNumber,
		TypeFontFamily, TypeFontWeight, TypeCubicBezier, TypeStrokeStyle,
		TypeBorder, TypeTransition, TypeShadow, TypeGradient, TypeTypography,
	}
}
