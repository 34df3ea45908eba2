package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackerOutput = `loading model
Frame #:  1
{"ID": 1, "Xmin": 10, "Ymin": 20, "Xmax": 50, "Ymax": 120, "InCourt": true}
{"ID": 2, "Xmin": 60, "Ymin": 20, "Xmax": 90, "Ymax": 110, "InCourt": false}
{"Class": 0, "Confidence": 0.9, "Xmin": 1, "Ymin": 2, "Xmax": 3, "Ymax": 4}
FPS: 12.40
Frame #:  2
{"ID": 1, "Xmin": 12, "Ymin": 21, "Xmax": 52, "Ymax": 121, "InCourt": true}
{"ID": broken
Frame #:  3
Frame #:  4
{"ID": 3, "Xmin": 0, "Ymin": 0, "Xmax": 5, "Ymax": 5, "InCourt": true}
Frame #:  5
EOF
Frame #:  6
`

func collectBatches(t *testing.T, output string, batchLen int) [][]*frameObjects {
	t.Helper()

	framesStatsC := make(chan []*frameObjects)
	go func() {
		defer close(framesStatsC)
		readTrackerOutput(strings.NewReader(output), batchLen, framesStatsC)
	}()

	var batches [][]*frameObjects
	for batch := range framesStatsC {
		batches = append(batches, batch)
	}
	return batches
}

func TestReadTrackerOutput_Batches(t *testing.T) {
	t.Parallel()

	batches := collectBatches(t, trackerOutput, 2)

	// frames 1-5, the frame after EOF is ignored
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 2)
	assert.Len(t, batches[2], 1)

	numbers := make([]int, 0)
	for _, batch := range batches {
		for _, f := range batch {
			numbers = append(numbers, f.frameNumber)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, numbers)
}

func TestReadTrackerOutput_ParsesObjects(t *testing.T) {
	t.Parallel()

	batches := collectBatches(t, trackerOutput, 16)
	require.Len(t, batches, 1)
	frames := batches[0]

	first := frames[0]
	require.Len(t, first.playersBoundingBoxes, 2)
	assert.Equal(t, playerBoundingBox{ID: 1, Xmin: 10, Ymin: 20, Xmax: 50, Ymax: 120, InCourt: true}, *first.playersBoundingBoxes[1])
	assert.False(t, first.playersBoundingBoxes[2].InCourt)
	require.Len(t, first.customObjectBoundingBoxes, 1)
	assert.Equal(t, 0, first.customObjectBoundingBoxes[0].Class)

	// the broken line is skipped, the valid one of the same frame is kept
	assert.Len(t, frames[1].playersBoundingBoxes, 1)
	assert.Empty(t, frames[2].playersBoundingBoxes)
	assert.Contains(t, frames[3].playersBoundingBoxes, 3)
}

func TestReadTrackerOutput_NoEOFMarker(t *testing.T) {
	t.Parallel()

	batches := collectBatches(t, "Frame #: 1\nFrame #: 2\nFrame #: 3\n", 2)
	require.Len(t, batches, 2)
	assert.Len(t, batches[1], 1)
}

func TestReadTrackerOutput_DataBeforeFirstFrame(t *testing.T) {
	t.Parallel()

	batches := collectBatches(t, `{"ID": 1, "Xmin": 1, "Ymin": 1, "Xmax": 2, "Ymax": 2, "InCourt": true}`+"\n", 4)
	assert.Empty(t, batches)
}
