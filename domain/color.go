// Package domain contains core concepts of the signal system.
// This file defines the signal colors and their parsing rules.
package domain

import (
	"fmt"

	"github.com/crazinneeees/svetofor/errors"
)

// Color is the state of the shared signal.
type Color string

const (
	ColorNone   Color = "none"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
)

// ParseColor accepts exactly the four lowercase color names.
// No case folding, no trimming: the wire contract is strict.
func ParseColor(raw string) (Color, error) {
	switch Color(raw) {
	case ColorNone, ColorRed, ColorYellow, ColorGreen:
		return Color(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownColor, raw)
	}
}

func (c Color) String() string {
	return string(c)
}
