package video

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/chenBenjamin97/team-assigner/pkg/utils"
	"github.com/spf13/viper"
)

// RunTracker executes python code that uses YOLOv4 based on COCO dataset and uses DEEP-SORT in order to detect players in each frame
// and track them between frames. This function listens to python's standard output, save it in data structre and each batch of
// frames ('tracker.batch_frames' from configuration file) sends the data through a chan to another function to handle it.
// Because this function is the only one who writes it given chan, it will close it before it's finishing.
func RunTracker(videoPath string, framesStatsC chan<- []*frameObjects) {
	defer close(framesStatsC)

	cmd := exec.Command("python3", viper.GetString("directory.yolov4-deepsort"), "--video", videoPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Printf("RunTracker: Error, got '%v'", err)
		return
	}
	defer stdout.Close()

	if err := cmd.Start(); err != nil {
		log.Printf("RunTracker: Error, got '%v'", err)
		return
	}

	readTrackerOutput(stdout, batchLength(), framesStatsC)

	if err := cmd.Wait(); err != nil {
		log.Printf("RunTracker: Error waiting python's process, Got '%v'", err)
	}
}

func batchLength() int {
	if n := viper.GetInt("tracker.batch_frames"); n > 0 {
		return n
	}
	return utils.BatchLength
}

// readTrackerOutput parses tracker's output line by line and sends batches of batchLen frames through framesStatsC.
// It returns when the tracker prints "EOF" or it's output ends, after sending the frames left.
// Frame numbers count from 1 over the whole video.
func readTrackerOutput(r io.Reader, batchLen int, framesStatsC chan<- []*frameObjects) {
	scanner := bufio.NewScanner(r)
	batch := make([]*frameObjects, 0, batchLen)
	framesCounter := 0

	flush := func() {
		if len(batch) == 0 {
			return
		}
		framesStatsC <- batch // pass data to other function to handle
		// allocate new slice in order not to touch the values passed to the chan above
		batch = make([]*frameObjects, 0, batchLen)
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.Contains(line, "Frame #:"):
			if len(batch) == batchLen {
				flush()
			}
			framesCounter++
			batch = append(batch, newFrameObjects(framesCounter))

		case line == "EOF": // finished to read all frames
			flush()
			return

		case strings.Contains(line, "FPS: "): // this is a log print, skip it
			continue

		case strings.Contains(line, "{\"ID\":"): // it's printing detected player data
			if len(batch) == 0 {
				log.Printf("readTrackerOutput: Error, player data before first frame: '%s'", line)
				continue
			}
			p := playerBoundingBox{}
			if err := json.Unmarshal([]byte(line), &p); err != nil {
				log.Printf("readTrackerOutput: Error, got '%v'", err)
				continue
			}
			batch[len(batch)-1].playersBoundingBoxes[p.ID] = &p

		case strings.Contains(line, "{\"Class\":"):
			if len(batch) == 0 {
				log.Printf("readTrackerOutput: Error, object data before first frame: '%s'", line)
				continue
			}
			obj := customObjectBoundingBox{}
			if err := json.Unmarshal([]byte(line), &obj); err != nil {
				log.Printf("readTrackerOutput: Error, got '%v'", err)
				continue
			}
			last := batch[len(batch)-1]
			last.customObjectBoundingBoxes = append(last.customObjectBoundingBoxes, &obj)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("readTrackerOutput: Error reading tracker's output, got '%v'", err)
	}

	flush()
}
