package team

import (
	"errors"
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ErrTooFewPoints is returned when asked for more clusters than there are points
var ErrTooFewPoints = errors.New("fewer points than clusters")

// Model is the result of fitting k clusters: one centroid per cluster and, for every input
// point, the index of the centroid it belongs to
type Model struct {
	Centroids []Color
	Labels    []int
}

// Clusterer partitions colors into k groups. restarts is the number of independent
// initializations to try, the best one is kept.
type Clusterer interface {
	Fit(points []Color, k, restarts int) (Model, error)
}

// KMeans is a Clusterer backed by github.com/muesli/kmeans.
// Initialization is random, so results are only deterministic on well separated data.
type KMeans struct{}

// NewKMeans returns the default Clusterer
func NewKMeans() *KMeans {
	return &KMeans{}
}

// Fit runs k-means restarts times and keeps the partition with the lowest within-cluster sum of squares.
// Colors are scaled to [0, 1] while fitting, the returned centroids are back in [0, 255].
func (km *KMeans) Fit(points []Color, k, restarts int) (Model, error) {
	if k < 1 {
		return Model{}, fmt.Errorf("Fit: invalid cluster count %d", k)
	}

	if len(points) < k {
		return Model{}, ErrTooFewPoints
	}

	if restarts < 1 {
		restarts = 1
	}

	dataset := make(clusters.Observations, len(points))
	for i, p := range points {
		dataset[i] = clusters.Coordinates{p[0] / 255, p[1] / 255, p[2] / 255}
	}

	var best clusters.Clusters
	bestInertia := math.Inf(1)
	for i := 0; i < restarts; i++ {
		cc, err := kmeans.New().Partition(dataset, k)
		if err != nil {
			return Model{}, fmt.Errorf("Fit: partition failed, got '%w'", err)
		}

		if inertia := withinSumOfSquares(cc, dataset); inertia < bestInertia {
			best, bestInertia = cc, inertia
		}
	}

	model := Model{
		Centroids: make([]Color, len(best)),
		Labels:    make([]int, len(dataset)),
	}

	for i, c := range best {
		model.Centroids[i] = Color{c.Center[0] * 255, c.Center[1] * 255, c.Center[2] * 255}
	}

	for i, p := range dataset {
		model.Labels[i] = best.Nearest(p)
	}

	return model, nil
}

// withinSumOfSquares is the k-means objective, Coordinates.Distance is already squared
func withinSumOfSquares(cc clusters.Clusters, dataset clusters.Observations) float64 {
	var total float64
	for _, p := range dataset {
		total += p.Distance(cc[cc.Nearest(p)].Center)
	}
	return total
}

var _ Clusterer = (*KMeans)(nil)
