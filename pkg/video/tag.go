package video

import (
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/chenBenjamin97/team-assigner/pkg/team"
	"github.com/chenBenjamin97/team-assigner/pkg/utils"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

// Tag reads a video from given source, learns the two team colors from the first frame with enough in-court players
// and plots every player in it's team's color. The tagged (XVID (== MPEG-4 codec) format, '.avi' extension, converted by ffmpeg)
// video will be saved in 'ready' directory from configuration file, next to a '.teams.json' summary of the session.
// srcVideoName should include file's extension ('.mp4', etc.)
func Tag(srcVideoName string) {
	if !summaries.start(srcVideoName) {
		log.Printf("Tag: '%s' is already being tagged, skipping", srcVideoName)
		return
	}

	var result *Summary
	defer func() {
		summaries.done(srcVideoName, result)
	}()

	srcVideoPath := path.Join(viper.GetString("directory.source"), srcVideoName)
	tmpVideoPath := path.Join(viper.GetString("directory.temp"), strings.Split(srcVideoName, ".")[0]+"."+"avi")
	outputVideoPath := path.Join(viper.GetString("directory.ready"), srcVideoName)

	cfg, err := team.ConfigFromViper(viper.GetViper())
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}

	trainer, err := team.NewTrainer(cfg)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}

	cap, err := gocv.VideoCaptureFile(srcVideoPath)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer cap.Close()

	videoWriter, err := gocv.VideoWriterFile(tmpVideoPath, "XVID", cap.Get(gocv.VideoCaptureFPS), int(cap.Get(gocv.VideoCaptureFrameWidth)), int(cap.Get(gocv.VideoCaptureFrameHeight)), true)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer videoWriter.Close()
	defer os.Remove(tmpVideoPath) // remove '.avi' temp file at the end of this function

	framesObjectsStatsC := make(chan []*frameObjects)
	go RunTracker(srcVideoPath, framesObjectsStatsC)

	summary := newSummary(srcVideoName)
	tg := newTagger(trainer, summary, minTrainingPlayers())

	frameMat := gocv.NewMat()
	defer frameMat.Close()

	videoEnded := false
	for framesObjectsStats := range framesObjectsStatsC {
		if videoEnded { // keep draining so the tracker goroutine can finish
			continue
		}

		referees := refereeIDs(framesObjectsStats)

		for _, frameStats := range framesObjectsStats {
			if !cap.Read(&frameMat) { // finished to read all video's frames
				videoEnded = true
				break
			}

			if err := tg.tagFrame(&frameMat, frameStats, referees); err != nil {
				log.Printf("Tag: Error tagging frame number %v of '%v', got '%v'. Writing it untagged.", frameStats.frameNumber, srcVideoPath, err)
			}

			if err := videoWriter.Write(frameMat); err != nil {
				log.Printf("Tag: Error writing frame number %v, got '%v'", frameStats.frameNumber, err)
			}
		}
	}

	if tg.classifier == nil {
		log.Printf("Tag: Warning, no frame of '%s' had %d players in court, team colors were never learned", srcVideoName, tg.minPlayers)
	}

	// Convert to from 'avi' to 'mp4'. example:ffmpeg -i testBasketball.avi testBasketball.mp4
	cmd := exec.Command("ffmpeg", "-y", "-i", tmpVideoPath, outputVideoPath)
	if err := cmd.Run(); err != nil {
		log.Printf("Tag: Error from ffmpeg, got '%v'", err)
	}

	summary.finish(tg.classifier, tg.referees)
	if err := summary.Write(outputVideoPath + utils.SummaryExtension); err != nil {
		log.Printf("Tag: Error, got '%v'", err)
	}

	log.Printf("Tag: Finished '%s' (session %s), %d players assigned", srcVideoName, summary.Session, len(summary.Assignments))
	result = summary
}

func minTrainingPlayers() int {
	if viper.IsSet("teams.min_training_players") {
		if n := viper.GetInt("teams.min_training_players"); n > 0 {
			return n
		}
	}
	return utils.MinTrainingPlayers
}

// tagger holds a video's team state while it's frames are tagged one after the other
type tagger struct {
	trainer    *team.Trainer
	classifier *team.Classifier // nil until a frame had enough players to train on
	summary    *Summary
	minPlayers int
	referees   map[int]bool // every player ID seen as referee so far
}

func newTagger(trainer *team.Trainer, summary *Summary, minPlayers int) *tagger {
	return &tagger{
		trainer:    trainer,
		summary:    summary,
		minPlayers: minPlayers,
		referees:   make(map[int]bool),
	}
}

// assignTeams returns the team of every in-court player of the frame that is not a referee. The classifier
// is trained on the first frame with at least minPlayers such players, frames before it get no teams.
// referees are the IDs flagged in the frame's batch, they stay excluded for the rest of the video.
func (tg *tagger) assignTeams(img image.Image, stats *frameObjects, referees map[int]bool) (map[team.PlayerID]team.TeamID, error) {
	for id := range referees {
		tg.referees[id] = true
	}

	players := stats.teamPlayers(tg.referees)
	if len(players) == 0 || (tg.classifier == nil && len(players) < tg.minPlayers) {
		return nil, nil
	}

	if tg.classifier == nil {
		tg.classifier = tg.trainer.TrainTeamColors(img, players)
		tg.summary.trained(tg.classifier, stats.frameNumber)
	}

	teams := make(map[team.PlayerID]team.TeamID, len(players))
	for _, p := range players {
		teamID, err := tg.classifier.Classify(img, p.Box, p.ID)
		if err != nil {
			return nil, fmt.Errorf("assignTeams: Error classifying player %d, got '%v'", p.ID, err)
		}
		teams[p.ID] = teamID
	}

	return teams, nil
}

// tagFrame plots every in-court player of the frame in it's team's color.
// Frames before training are only plotted with referees, ball and hoop.
func (tg *tagger) tagFrame(frame *gocv.Mat, stats *frameObjects, referees map[int]bool) error {
	var img image.Image
	if len(stats.playersBoundingBoxes) > 0 {
		// team colors are read from a copy, the plots below must not leak into other players' crops
		var err error
		if img, err = frame.ToImage(); err != nil {
			return fmt.Errorf("tagFrame: Error converting frame, got '%v'", err)
		}
	}

	teams, err := tg.assignTeams(img, stats, referees)
	if err != nil {
		return err
	}

	if len(teams) > 0 {
		centroids := tg.classifier.Centroids()
		for id, teamID := range teams {
			plotPlayerOnFrame(frame, stats.playersBoundingBoxes[int(id)], teamLabel(teamID), centroids.Color(teamID).ToRGBA())
		}
	}

	for id := range tg.referees {
		if box, ok := stats.playersBoundingBoxes[id]; ok && box.InCourt {
			plotPlayerOnFrame(frame, box, "Referee", refereeColor)
		}
	}

	plotObjects(frame, stats.customObjectBoundingBoxes)

	return nil
}
