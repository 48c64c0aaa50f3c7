package main

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// parseHexColor parses "RRGGBB" (optionally "#RRGGBB", any case) into an
// opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexNibble(h[2*i])
		lo, ok2 := hexNibble(h[2*i+1])
		if !ok1 || !ok2 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		rgb[i] = hi<<4 | lo
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// colorParser turns a query value into a color. Named colors are only
// consulted when hex parsing fails and named is set.
type colorParser struct {
	named bool
}

func (p colorParser) parse(s string) (color.NRGBA, error) {
	c, err := parseHexColor(s)
	if err == nil || !p.named {
		return c, err
	}
	if nc, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		// colornames entries are all opaque, so RGBA and NRGBA agree.
		return color.NRGBA{R: nc.R, G: nc.G, B: nc.B, A: 0xff}, nil
	}
	return color.NRGBA{}, err
}

func hexString(c color.NRGBA) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}
