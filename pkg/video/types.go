package video

import (
	"image"
	"sort"

	"github.com/chenBenjamin97/team-assigner/pkg/team"
)

// playerBoundingBox is one tracked player as printed by the tracker
type playerBoundingBox struct {
	ID      int
	Xmin    int
	Ymin    int
	Xmax    int
	Ymax    int
	InCourt bool
}

func (p *playerBoundingBox) rect() image.Rectangle {
	return image.Rect(p.Xmin, p.Ymin, p.Xmax, p.Ymax)
}

func (p *playerBoundingBox) detection() team.PlayerDetection {
	return team.PlayerDetection{
		ID:  team.PlayerID(p.ID),
		Box: team.BoundingBox{Xmin: p.Xmin, Ymin: p.Ymin, Xmax: p.Xmax, Ymax: p.Ymax},
	}
}

// missing reports whether the tracker lost this player in the frame, it then prints an all zero box
func (p *playerBoundingBox) missing() bool {
	return p.Xmin == 0 && p.Ymin == 0 && p.Xmax == 0 && p.Ymax == 0
}

type customObjectBoundingBox struct {
	Class      int
	Confidence float32
	Xmin       int
	Ymin       int
	Xmax       int
	Ymax       int
}

func (o *customObjectBoundingBox) rect() image.Rectangle {
	return image.Rect(o.Xmin, o.Ymin, o.Xmax, o.Ymax)
}

type frameObjects struct {
	frameNumber               int
	playersBoundingBoxes      map[int]*playerBoundingBox
	customObjectBoundingBoxes []*customObjectBoundingBox
}

func newFrameObjects(frameNum int) *frameObjects {
	x := frameObjects{}
	x.frameNumber = frameNum
	x.playersBoundingBoxes = make(map[int]*playerBoundingBox)
	x.customObjectBoundingBoxes = make([]*customObjectBoundingBox, 0)
	return &x
}

// teamPlayers returns the detections of in-court players that are not referees, sorted by ID
func (f *frameObjects) teamPlayers(refereeIDs map[int]bool) []team.PlayerDetection {
	ids := make([]int, 0, len(f.playersBoundingBoxes))
	for id, box := range f.playersBoundingBoxes {
		if box.InCourt && !box.missing() && !refereeIDs[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	res := make([]team.PlayerDetection, 0, len(ids))
	for _, id := range ids {
		res = append(res, f.playersBoundingBoxes[id].detection())
	}
	return res
}
