package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s has the #RRGGBB form.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// ParseHexColor decodes #RRGGBB. ok is false for anything else.
func ParseHexColor(s string) (r, g, b uint8, ok bool) {
	if !IsHexColor(s) {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// HexToAnsi256 maps a #RRGGBB color to the nearest ANSI256 index as a string
// suitable for lipgloss.Color. Invalid input yields fallback.
func HexToAnsi256(hex, fallback string) string {
	r, g, b, ok := ParseHexColor(hex)
	if !ok {
		return fallback
	}
	return strconv.Itoa(rgbToAnsi256(r, g, b))
}

// ColorSwatch renders width cells of solid color using half blocks.
func ColorSwatch(hex string, width int) string {
	r, g, b, ok := ParseHexColor(hex)
	if !ok || width <= 0 {
		return strings.Repeat("?", max(width, 0))
	}
	idx := rgbToAnsi256(r, g, b)
	return fmt.Sprintf("\033[38;5;%dm\033[48;5;%dm%s\033[0m", idx, idx, strings.Repeat("▀", width))
}

// rgbToAnsi256 maps an RGB color to the nearest ANSI256 color index.
// It checks both the 6x6x6 color cube (indices 16-231) and the 24-step
// grayscale ramp (indices 232-255), returning whichever is closer.
func rgbToAnsi256(r, g, b uint8) int {
	cubeR := cubeIndex(r)
	cubeG := cubeIndex(g)
	cubeB := cubeIndex(b)
	cubeIdx := 16 + 36*cubeR + 6*cubeG + cubeB
	cubeDist := colorDist(r, g, b, cubeValue(cubeR), cubeValue(cubeG), cubeValue(cubeB))

	// Grayscale values: 8, 18, 28, ..., 238
	gray := float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
	grayIdx := int(math.Round((gray - 8.0) / 10.0))
	if grayIdx < 0 {
		grayIdx = 0
	} else if grayIdx > 23 {
		grayIdx = 23
	}
	grayValue := uint8(8 + 10*grayIdx)
	grayDist := colorDist(r, g, b, grayValue, grayValue, grayValue)

	if grayDist < cubeDist {
		return 232 + grayIdx
	}
	return cubeIdx
}

// cubeIndex maps an 8-bit color component to a 6x6x6 cube index (0-5).
// Cube values are 0, 95, 135, 175, 215, 255.
func cubeIndex(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

func cubeValue(idx int) uint8 {
	if idx == 0 {
		return 0
	}
	return uint8(55 + 40*idx)
}

func colorDist(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return dr*dr + dg*dg + db*db
}
