package team

import (
	"errors"
	"fmt"
	"image"
	"log"
)

// corner positions inside the jersey region, in the order they are voted on
const (
	topLeft = iota
	topRight
	bottomLeft
	bottomRight
)

// JerseyColorExtractor finds the dominant jersey color inside a player's bounding box.
// It clusters the pixels of the box's top half into two groups and treats the group that owns
// most of the region's corners as background, so it assumes the player does not fill the crop.
type JerseyColorExtractor struct {
	clusterer Clusterer
	restarts  int
	fallback  Color
	logger    *log.Logger
}

// NewJerseyColorExtractor returns an extractor using the given clustering primitive.
// A nil clusterer falls back to k-means, a nil logger to the standard logger.
func NewJerseyColorExtractor(cfg Config, clusterer Clusterer, logger *log.Logger) *JerseyColorExtractor {
	if clusterer == nil {
		clusterer = NewKMeans()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &JerseyColorExtractor{
		clusterer: clusterer,
		restarts:  cfg.ExtractRestarts,
		fallback:  cfg.FallbackColor,
		logger:    logger,
	}
}

// ExtractColor returns the jersey color of the player inside box. A box that leaves nothing to sample
// (degenerate, out of frame, a single row, no frame at all) yields the neutral fallback color as a regular
// result. The error is non nil only when clustering the region failed, the returned color is then the
// fallback color as well.
func (e *JerseyColorExtractor) ExtractColor(frame image.Image, box BoundingBox) (Color, error) {
	c, err := e.extract(frame, box)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, ErrInvalidRegion), errors.Is(err, ErrEmptyRegion):
		return e.fallback, nil
	default:
		e.logger.Printf("ExtractColor: Warning, could not cluster box %+v, got '%v'", box, err)
		return e.fallback, fmt.Errorf("ExtractColor: %w", err)
	}
}

func (e *JerseyColorExtractor) extract(frame image.Image, box BoundingBox) (Color, error) {
	if frame == nil {
		return Color{}, ErrInvalidRegion
	}

	region, err := box.jerseyRegion(frame.Bounds())
	if err != nil {
		return Color{}, err
	}

	pixels, err := regionPixels(frame, region)
	if err != nil {
		return Color{}, err
	}

	model, err := e.clusterer.Fit(pixels, 2, e.restarts)
	if err != nil {
		return Color{}, fmt.Errorf("extract: clustering %d pixels, %w", len(pixels), err)
	}

	if len(model.Centroids) != 2 || len(model.Labels) != len(pixels) {
		return Color{}, fmt.Errorf("extract: malformed model, %d centroids and %d labels for %d pixels", len(model.Centroids), len(model.Labels), len(pixels))
	}

	background := backgroundCluster(model.Labels, region.Dx(), region.Dy())
	if background != 0 && background != 1 {
		return Color{}, fmt.Errorf("extract: unexpected cluster label %d", background)
	}

	return model.Centroids[1-background], nil
}

// backgroundCluster returns the label owning most of the four corners of a width x height label grid.
// On a tie the label seen first in corner order wins.
func backgroundCluster(labels []int, width, height int) int {
	var corners [4]int
	corners[topLeft] = labels[0]
	corners[topRight] = labels[width-1]
	corners[bottomLeft] = labels[(height-1)*width]
	corners[bottomRight] = labels[height*width-1]

	counts := make(map[int]int, 2)
	for _, label := range corners {
		counts[label]++
	}

	background := corners[topLeft]
	for _, label := range corners[1:] {
		if counts[label] > counts[background] {
			background = label
		}
	}

	return background
}
