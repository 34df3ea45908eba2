package team

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Color is an RGB triple, each channel in the [0, 255] range
type Color [3]float64

// FallbackGray is the neutral color used when a player's region can not be sampled
var FallbackGray = Color{128, 128, 128}

// Distance returns the euclidean distance between two colors
func (c Color) Distance(other Color) float64 {
	return floats.Distance(c[:], other[:], 2)
}

// ToRGBA returns c as a drawable color, each channel rounded and clamped to a byte
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: channelByte(c[0]), G: channelByte(c[1]), B: channelByte(c[2]), A: 0}
}

func (c Color) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", c[0], c[1], c[2])
}

func channelByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// colorFromSlice builds a Color from a config value like [255, 0, 0]
func colorFromSlice(values []int) (Color, error) {
	if len(values) != 3 {
		return Color{}, fmt.Errorf("expected 3 channels, got %d", len(values))
	}

	var c Color
	for i, v := range values {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %d out of range: %d", i, v)
		}
		c[i] = float64(v)
	}

	return c, nil
}

// pixelAt reads a single pixel of the frame as a Color
func pixelAt(frame image.Image, x, y int) Color {
	if rgba, ok := frame.(*image.RGBA); ok { // fast path, gocv's Mat.ToImage returns *image.RGBA
		p := rgba.RGBAAt(x, y)
		return Color{float64(p.R), float64(p.G), float64(p.B)}
	}

	r, g, b, _ := frame.At(x, y).RGBA()
	return Color{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

// TeamID identifies one of the two teams
type TeamID int

const (
	Team1 TeamID = 1
	Team2 TeamID = 2
)

// Valid reports whether t is one of the two teams
func (t TeamID) Valid() bool {
	return t == Team1 || t == Team2
}

// TeamCentroids holds the representative jersey color of each team, index 0 is Team1
type TeamCentroids [2]Color

// FallbackCentroids are installed when there were not enough players to learn the team colors from
var FallbackCentroids = TeamCentroids{
	{255, 0, 0}, // red
	{0, 0, 255}, // blue
}

// Color returns the centroid of the given team. Invalid team IDs return the neutral gray.
func (tc TeamCentroids) Color(t TeamID) Color {
	if !t.Valid() {
		return FallbackGray
	}
	return tc[t-1]
}

// Nearest returns the team whose centroid is closest to c. Ties go to Team1.
func (tc TeamCentroids) Nearest(c Color) TeamID {
	if c.Distance(tc[1]) < c.Distance(tc[0]) {
		return Team2
	}
	return Team1
}
