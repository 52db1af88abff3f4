package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor splits a "#rrggbb" value into its channels, most significant
// byte first. The leading '#' is optional.
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: expected 6 hex digits", hex)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
		}
		rgb[i] = uint8(v)
	}
	return rgb[0], rgb[1], rgb[2], nil
}

// FormatHexColor is the inverse of ParseHexColor; it always yields lower case.
func FormatHexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
