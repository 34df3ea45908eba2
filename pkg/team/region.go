package team

import (
	"errors"
	"image"
)

// ErrInvalidRegion is returned for boxes that are degenerate after being clamped to the frame
var ErrInvalidRegion = errors.New("invalid region")

// ErrEmptyRegion is returned when a crop holds no pixels to cluster
var ErrEmptyRegion = errors.New("empty region")

// BoundingBox is a detector's box in frame pixel coordinates. Nothing guarantees it is ordered,
// inside the frame or larger than a pixel.
type BoundingBox struct {
	Xmin int `json:"Xmin"`
	Ymin int `json:"Ymin"`
	Xmax int `json:"Xmax"`
	Ymax int `json:"Ymax"`
}

// Clamp returns b with every coordinate clamped into the given frame bounds
func (b BoundingBox) Clamp(bounds image.Rectangle) BoundingBox {
	return BoundingBox{
		Xmin: clampInt(b.Xmin, bounds.Min.X, bounds.Max.X),
		Ymin: clampInt(b.Ymin, bounds.Min.Y, bounds.Max.Y),
		Xmax: clampInt(b.Xmax, bounds.Min.X, bounds.Max.X),
		Ymax: clampInt(b.Ymax, bounds.Min.Y, bounds.Max.Y),
	}
}

// Rect returns b as an image.Rectangle. Unlike image.Rect it does not reorder the corners.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rectangle{Min: image.Pt(b.Xmin, b.Ymin), Max: image.Pt(b.Xmax, b.Ymax)}
}

// jerseyRegion clamps b into bounds and returns the top half of the resulting crop,
// where the jersey is expected to dominate
func (b BoundingBox) jerseyRegion(bounds image.Rectangle) (image.Rectangle, error) {
	c := b.Clamp(bounds)
	if c.Xmax <= c.Xmin || c.Ymax <= c.Ymin {
		return image.Rectangle{}, ErrInvalidRegion
	}

	height := c.Ymax - c.Ymin
	if height < 2 {
		return image.Rectangle{}, ErrInvalidRegion
	}

	return image.Rectangle{Min: image.Pt(c.Xmin, c.Ymin), Max: image.Pt(c.Xmax, c.Ymin+height/2)}, nil
}

// regionPixels flattens region row by row into a slice of colors
func regionPixels(frame image.Image, region image.Rectangle) ([]Color, error) {
	if region.Empty() {
		return nil, ErrEmptyRegion
	}

	pixels := make([]Color, 0, region.Dx()*region.Dy())
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			pixels = append(pixels, pixelAt(frame, x, y))
		}
	}

	return pixels, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
