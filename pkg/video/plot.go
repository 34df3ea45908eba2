package video

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chenBenjamin97/team-assigner/pkg/team"
	"github.com/chenBenjamin97/team-assigner/pkg/utils"
	"gocv.io/x/gocv"
)

var whiteRGB = color.RGBA{255, 255, 255, 0}
var ballColor = color.RGBA{255, 128, 0, 0}
var hoopColor = color.RGBA{255, 255, 102, 0}
var refereeColor = color.RGBA{0, 0, 0, 0}

// plotPlayerOnFrame plots given bounding box in it's team color and writes above it the player's ID and label
func plotPlayerOnFrame(frame *gocv.Mat, box *playerBoundingBox, label string, plotColor color.RGBA) {
	// the tracker could not find bounding box for this player in this frame, nothing to plot
	if box.missing() {
		return
	}

	boundingBoxRect := box.rect()
	gocv.Rectangle(frame, boundingBoxRect, plotColor, 3)

	textToPutFirstLine := fmt.Sprintf("ID: %d", box.ID)
	startPointFirstLine := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-20)
	startPointSecondLine := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-5)

	textBackgroundRect := image.Rect(startPointFirstLine.X, startPointFirstLine.Y-15, startPointFirstLine.X+90, startPointFirstLine.Y+20)
	gocv.Rectangle(frame, textBackgroundRect, plotColor, -1) // thickness -1 == filled rectangle
	gocv.PutText(frame, textToPutFirstLine, startPointFirstLine, gocv.FontHersheyPlain, 1, textColor(plotColor), 2)
	gocv.PutText(frame, label, startPointSecondLine, gocv.FontHersheyPlain, 1, textColor(plotColor), 2)
}

// plotReferee plot's Referee that do not have an ID (the tracker did not found a player bounding box which matching this bounding box)
func plotReferee(frame *gocv.Mat, bbox image.Rectangle) {
	startPointText := image.Pt(bbox.Min.X, bbox.Min.Y)
	textBackgroundRect := image.Rect(startPointText.X, startPointText.Y, bbox.Max.X, startPointText.Y-25)

	gocv.Rectangle(frame, bbox, refereeColor, 3)
	gocv.Rectangle(frame, textBackgroundRect, refereeColor, -1) // thickness -1 == filled rectangle
	gocv.PutText(frame, "Referee", startPointText, gocv.FontHersheyPlain, 1, whiteRGB, 2)
}

// plotObjects plots ball, hoop and unmatched referees found by the tracker on given frame
func plotObjects(frame *gocv.Mat, objects []*customObjectBoundingBox) {
	for _, obj := range objects {
		if obj.Xmin == 0 && obj.Ymin == 0 && obj.Xmax == 0 && obj.Ymax == 0 { // skip, invalid
			continue
		}

		switch obj.Class {
		case utils.BallClass:
			gocv.Rectangle(frame, obj.rect(), ballColor, 3)
		case utils.HoopClass:
			gocv.Rectangle(frame, obj.rect(), hoopColor, 3)
		case utils.RefereeClass:
			plotReferee(frame, obj.rect())
		}
	}
}

// textColor picks black or white text, whichever reads better on given background
func textColor(background color.RGBA) color.RGBA {
	luma := 0.299*float64(background.R) + 0.587*float64(background.G) + 0.114*float64(background.B)
	if luma > 150 {
		return color.RGBA{0, 0, 0, 0}
	}
	return whiteRGB
}

// teamLabel is the second text line above a player
func teamLabel(t team.TeamID) string {
	return fmt.Sprintf("Team %d", t)
}
