package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansFit_SeparatesTwoGroups(t *testing.T) {
	t.Parallel()

	points := []Color{
		{250, 5, 5}, {0, 0, 250}, {245, 10, 0}, {10, 5, 240}, {255, 0, 10}, {5, 10, 255},
	}

	model, err := NewKMeans().Fit(points, 2, 5)
	require.NoError(t, err)
	require.Len(t, model.Centroids, 2)
	require.Len(t, model.Labels, len(points))

	redLabel, blueLabel := model.Labels[0], model.Labels[1]
	require.NotEqual(t, redLabel, blueLabel)
	for i := 0; i < len(points); i += 2 {
		assert.Equal(t, redLabel, model.Labels[i], "point %d", i)
		assert.Equal(t, blueLabel, model.Labels[i+1], "point %d", i+1)
	}

	assert.InDelta(t, 0, model.Centroids[redLabel].Distance(Color{250, 5, 5}), 0.01)
	assert.InDelta(t, 0, model.Centroids[blueLabel].Distance(Color{5, 5, 248.33333333}), 0.01)
}

func TestKMeansFit_IdenticalPoints(t *testing.T) {
	t.Parallel()

	points := []Color{{100, 100, 100}, {100, 100, 100}, {100, 100, 100}}

	model, err := NewKMeans().Fit(points, 2, 1)
	require.NoError(t, err)
	for _, c := range model.Centroids {
		assert.InDelta(t, 0, c.Distance(Color{100, 100, 100}), 0.01)
	}
}

func TestKMeansFit_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := NewKMeans().Fit([]Color{{1, 2, 3}}, 2, 1)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewKMeans().Fit(nil, 2, 1)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewKMeans().Fit([]Color{{1, 2, 3}}, 0, 1)
	assert.Error(t, err)
}
