package team

import (
	"image"
	"image/color"
	"io"
	"log"
)

var (
	grass = color.RGBA{30, 140, 30, 255}
	red   = color.RGBA{220, 20, 20, 255}
	blue  = color.RGBA{20, 20, 220, 255}
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newFrame(width, height int, c color.RGBA) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(frame, frame.Bounds(), c)
	return frame
}

func fillRect(frame *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			frame.SetRGBA(x, y, c)
		}
	}
}

// playerWidth x playerHeight boxes, the jersey block sits inside the top half with a grass margin
const (
	playerWidth  = 20
	playerHeight = 40
)

// drawPlayers paints one player per jersey color side by side on a grass frame and returns their detections
func drawPlayers(jerseys ...color.RGBA) (*image.RGBA, []PlayerDetection) {
	frame := newFrame(playerWidth*len(jerseys), playerHeight, grass)
	detections := make([]PlayerDetection, 0, len(jerseys))

	for i, jersey := range jerseys {
		x := i * playerWidth
		fillRect(frame, image.Rect(x+5, 3, x+15, 17), jersey)
		detections = append(detections, PlayerDetection{
			ID:  PlayerID(i + 1),
			Box: BoundingBox{Xmin: x, Ymin: 0, Xmax: x + playerWidth, Ymax: playerHeight},
		})
	}

	return frame, detections
}

func toColor(c color.RGBA) Color {
	return Color{float64(c.R), float64(c.G), float64(c.B)}
}

// stubClusterer returns a fixed model and records how it was called
type stubClusterer struct {
	model    Model
	err      error
	points   []Color
	k        int
	restarts int
	calls    int
}

func (s *stubClusterer) Fit(points []Color, k, restarts int) (Model, error) {
	s.calls++
	s.points = append([]Color(nil), points...)
	s.k, s.restarts = k, restarts
	return s.model, s.err
}
