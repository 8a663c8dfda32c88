package led

import (
	"fmt"
	"strings"
)

// Color is one of the fixed status colors the strip can show.
type Color int

// Supported colors. Off is the zero value so an unset Color never lights the strip.
const (
	Off Color = iota
	Green
	Amber
	Red
	Blue
	White
)

// RGB is a 24-bit color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var colorNames = map[Color]string{
	Off:   "off",
	Green: "green",
	Amber: "amber",
	Red:   "red",
	Blue:  "blue",
	White: "white",
}

var colorValues = map[Color]RGB{
	Off:   {0, 0, 0},
	Green: {0, 255, 0},
	Amber: {255, 165, 0},
	Red:   {255, 0, 0},
	Blue:  {0, 0, 255},
	White: {255, 255, 255},
}

// aliases maps status words accepted in place of color names.
var aliases = map[string]Color{
	"ok":       Green,
	"updates":  Amber,
	"warning":  Amber,
	"error":    Red,
	"zigbee":   Red,
	"starting": Blue,
	"test":     White,
}

// Colors returns every supported color in declaration order.
func Colors() []Color {
	return []Color{Off, Green, Amber, Red, Blue, White}
}

// Names returns the canonical names of every supported color.
func Names() []string {
	colors := Colors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = c.String()
	}
	return names
}

// ParseColor resolves a color name or status alias. Matching ignores case and
// surrounding whitespace; empty and unknown names return ErrUnknownColor.
func ParseColor(name string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Off, fmt.Errorf("%w: empty name", ErrUnknownColor)
	}
	for c, n := range colorNames {
		if n == key {
			return c, nil
		}
	}
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// String returns the canonical color name.
func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Valid reports whether c is one of the supported colors.
func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// RGB returns the fixed triple for c.
func (c Color) RGB() RGB {
	return colorValues[c]
}

// Uint32 packs c as 0x00RRGGBB, the layout ws281x drivers expect.
func (c Color) Uint32() uint32 {
	v := c.RGB()
	return uint32(v.R)<<16 | uint32(v.G)<<8 | uint32(v.B)
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name or alias.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
