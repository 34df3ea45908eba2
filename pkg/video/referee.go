package video

import (
	"image"

	"github.com/chenBenjamin97/team-assigner/pkg/utils"
)

// minCorrespondingRatio is the overlap, on both axises of one of two rects, from which they are considered the same object
const minCorrespondingRatio = 0.75

// minRefereeMatchRatio is the share of a player's appearances that must match a referee detection to treat it as a referee
const minRefereeMatchRatio = 0.75

// correspondingRects returns true in case of overlap of more than 'minCorrespondingRatio' on both axises of one of given rects
func correspondingRects(r1, r2 image.Rectangle) bool {
	if r1.In(r2) || r2.In(r1) { // one of given rects contains the other one
		return true
	}

	intersectRect := r1.Intersect(r2)
	if intersectRect.Empty() {
		return false // given rects are not overlaps at all
	}

	covers := func(r image.Rectangle) bool {
		return float64(intersectRect.Dx()) >= minCorrespondingRatio*float64(r.Dx()) &&
			float64(intersectRect.Dy()) >= minCorrespondingRatio*float64(r.Dy())
	}

	return covers(r1) || covers(r2)
}

// refereeIDs returns the player IDs which match a referee bounding box in at least 'minRefereeMatchRatio' of their appearances
// in given frames. Those players are kept out of team training and classification.
// In addition, in each frame it marks a referee bounding box not to be plotted in case there is a player bounding box which matching it.
func refereeIDs(frames []*frameObjects) map[int]bool {
	// count total appearances of each player in given frames
	totalAppearances := make(map[int]int)
	// count how many frames each player matched a referee in
	matchesCounter := make(map[int]int)

	for _, frameStats := range frames {
		for id := range frameStats.playersBoundingBoxes {
			totalAppearances[id]++
		}

		matchedInFrame := make(map[int]bool)
		for _, obj := range frameStats.customObjectBoundingBoxes {
			if obj.Class != utils.RefereeClass {
				continue
			}

			for id, player := range frameStats.playersBoundingBoxes {
				if correspondingRects(obj.rect(), player.rect()) {
					matchedInFrame[id] = true
					obj.Class = utils.DontPlotFlag // drawn through the matching player instead
				}
			}
		}

		for id := range matchedInFrame {
			matchesCounter[id]++
		}
	}

	res := make(map[int]bool)
	for id, matches := range matchesCounter {
		if float64(matches) >= float64(totalAppearances[id])*minRefereeMatchRatio {
			res[id] = true
		}
	}

	return res
}
