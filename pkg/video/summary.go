package video

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/chenBenjamin97/team-assigner/pkg/team"
	"github.com/google/uuid"
)

// Summary is the outcome of tagging one video: the team colors learned and every player's team
type Summary struct {
	Session        uuid.UUID             `json:"session"`
	Video          string                `json:"video"`
	Started        time.Time             `json:"started"`
	Finished       time.Time             `json:"finished"`
	Centroids      *team.TeamCentroids   `json:"centroids,omitempty"` // nil until trained
	FallbackColors bool                  `json:"fallback_colors"`
	TrainedOnFrame int                   `json:"trained_on_frame,omitempty"`
	Assignments    map[team.PlayerID]int `json:"assignments"`
	Referees       []int                 `json:"referees"`
}

func newSummary(videoName string) *Summary {
	return &Summary{
		Session:     uuid.New(),
		Video:       videoName,
		Started:     time.Now(),
		Assignments: make(map[team.PlayerID]int),
		Referees:    make([]int, 0),
	}
}

// trained records the team colors once the classifier exists
func (s *Summary) trained(c *team.Classifier, frameNumber int) {
	centroids := c.Centroids()
	s.Centroids = &centroids
	s.FallbackColors = c.UsedFallback()
	s.TrainedOnFrame = frameNumber
}

// finish copies the final assignments into the summary. A player found to be a referee after it was
// classified is listed as referee only.
func (s *Summary) finish(c *team.Classifier, referees map[int]bool) {
	s.Finished = time.Now()
	if c != nil {
		for id, t := range c.Assignments() {
			if referees[int(id)] {
				continue
			}
			s.Assignments[id] = int(t)
		}
	}
	for id := range referees {
		s.Referees = append(s.Referees, id)
	}
	sort.Ints(s.Referees)
}

// Write saves the summary as JSON to given path
func (s *Summary) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("Summary.Write: Error encoding, got '%v'", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("Summary.Write: Error writing '%s', got '%v'", path, err)
	}

	return nil
}

// ReadSummary loads a summary saved by Write
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &Summary{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("ReadSummary: Error decoding '%s', got '%v'", path, err)
	}

	return s, nil
}

// TagState tells how far tagging of a video got
type TagState int

const (
	NotTagged TagState = iota
	Tagging
	Tagged
)

// registry keeps the summaries of videos tagged by this process
type registry struct {
	mu        sync.RWMutex
	running   map[string]bool
	summaries map[string]*Summary
}

var summaries = &registry{
	running:   make(map[string]bool),
	summaries: make(map[string]*Summary),
}

func (r *registry) start(videoName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running[videoName] {
		return false
	}
	r.running[videoName] = true
	return true
}

func (r *registry) done(videoName string, s *Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.running, videoName)
	if s != nil {
		r.summaries[videoName] = s
	}
}

func (r *registry) get(videoName string) (*Summary, TagState) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.running[videoName] {
		return nil, Tagging
	}
	if s, ok := r.summaries[videoName]; ok {
		return s, Tagged
	}
	return nil, NotTagged
}

// GetSummary returns the summary of a video tagged by this process, or whether it is still being tagged
func GetSummary(videoName string) (*Summary, TagState) {
	return summaries.get(videoName)
}
