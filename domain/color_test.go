package domain

import (
	"testing"

	"github.com/crazinneeees/svetofor/errors"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		input    string
		expected Color
		wantErr  bool
	}{
		{name: "none is a valid requested color", input: "none", expected: ColorNone},
		{name: "red", input: "red", expected: ColorRed},
		{name: "yellow", input: "yellow", expected: ColorYellow},
		{name: "green", input: "green", expected: ColorGreen},
		{name: "uppercase is rejected", input: "RED", wantErr: true},
		{name: "padding is rejected", input: " red", wantErr: true},
		{name: "unknown name", input: "blue", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, err := ParseColor(tt.input)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrUnknownColor)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, color)
		})
	}
}
