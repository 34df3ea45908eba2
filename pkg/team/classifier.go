package team

import (
	"errors"
	"image"
	"log"
	"sync"
)

// minTrainingColors is the number of usable jersey colors needed to learn two team centroids
const minTrainingColors = 2

// ErrUntrainedClassifier is returned when a Classifier that did not come from training or NewClassifier is used
var ErrUntrainedClassifier = errors.New("classifier has no team centroids, train it first")

// PlayerID is the tracker's identity for a player, stable across frames
type PlayerID int

// PlayerDetection is one tracked player in a frame
type PlayerDetection struct {
	ID  PlayerID    `json:"ID"`
	Box BoundingBox `json:"Box"`
}

// Option customizes a Trainer or Classifier
type Option func(*options)

type options struct {
	clusterer Clusterer
	logger    *log.Logger
}

// WithClusterer replaces the k-means clustering primitive
func WithClusterer(c Clusterer) Option {
	return func(o *options) {
		o.clusterer = c
	}
}

// WithLogger sets where warnings are written, the standard logger by default
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{clusterer: NewKMeans(), logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Trainer learns the two team colors of a session. It is the untrained state of a classifier:
// the only way to classify players is through the Classifier returned by TrainTeamColors.
type Trainer struct {
	cfg       Config
	opts      options
	extractor *JerseyColorExtractor
}

// NewTrainer validates cfg and returns a Trainer
func NewTrainer(cfg Config, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	return &Trainer{
		cfg:       cfg,
		opts:      o,
		extractor: NewJerseyColorExtractor(cfg, o.clusterer, o.logger),
	}, nil
}

// TrainTeamColors samples the jersey color of every detection in frame and clusters them into two teams.
// A box with nothing to sample contributes the fallback color like any other sample, detections whose
// region failed to cluster are skipped. With fewer than two usable colors the configured fallback
// centroids are used instead, so training always yields a working Classifier.
func (t *Trainer) TrainTeamColors(frame image.Image, detections []PlayerDetection) *Classifier {
	colors := make([]Color, 0, len(detections))
	for _, d := range detections {
		c, err := t.extractor.ExtractColor(frame, d.Box)
		if err != nil {
			t.opts.logger.Printf("TrainTeamColors: Warning, could not sample player %d (box %+v), skipping. got '%v'", d.ID, d.Box, err)
			continue
		}
		colors = append(colors, c)
	}

	if len(colors) < minTrainingColors {
		t.opts.logger.Printf("TrainTeamColors: Warning, only %d usable player colors out of %d detections, using fallback team colors", len(colors), len(detections))
		return t.newClassifier(t.cfg.FallbackCentroids, true)
	}

	model, err := t.opts.clusterer.Fit(colors, 2, t.cfg.TrainRestarts)
	if err != nil || len(model.Centroids) != 2 {
		t.opts.logger.Printf("TrainTeamColors: Warning, clustering %d player colors failed, using fallback team colors. got '%v'", len(colors), err)
		return t.newClassifier(t.cfg.FallbackCentroids, true)
	}

	return t.newClassifier(TeamCentroids{model.Centroids[0], model.Centroids[1]}, false)
}

func (t *Trainer) newClassifier(centroids TeamCentroids, fallback bool) *Classifier {
	c := &Classifier{
		centroids:   centroids,
		trained:     true,
		fallback:    fallback,
		extractor:   t.extractor,
		defaultTeam: t.cfg.DefaultTeam,
		overrides:   make(map[PlayerID]TeamID, len(t.cfg.Overrides)),
		assignments: make(map[PlayerID]TeamID),
		logger:      t.opts.logger,
	}

	for _, o := range t.cfg.Overrides {
		c.overrides[o.Player] = o.Team
	}

	return c
}

// Classifier assigns players to one of two teams by the color of their jersey.
// Team centroids never change after construction and a player's team never changes once assigned.
// It is safe for concurrent use.
type Classifier struct {
	centroids   TeamCentroids
	trained     bool
	fallback    bool
	extractor   *JerseyColorExtractor
	defaultTeam TeamID
	overrides   map[PlayerID]TeamID
	logger      *log.Logger

	mu          sync.Mutex
	assignments map[PlayerID]TeamID
}

// NewClassifier returns a Classifier for already known team colors, skipping training
func NewClassifier(centroids TeamCentroids, cfg Config, opts ...Option) (*Classifier, error) {
	t, err := NewTrainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return t.newClassifier(centroids, false), nil
}

// Classify returns the team of the player. The first call for a player samples its jersey inside box and
// picks the nearest team centroid, every later call returns that same team without looking at the frame.
// A box with nothing to sample is matched by the fallback color like any other color, only a player whose
// region failed to cluster gets the default team. Overrides win over the jersey color.
// The only error is ErrUntrainedClassifier.
func (c *Classifier) Classify(frame image.Image, box BoundingBox, id PlayerID) (TeamID, error) {
	if c == nil || !c.trained {
		return 0, ErrUntrainedClassifier
	}

	if team, ok := c.Team(id); ok {
		return team, nil
	}

	team, ok := c.overrides[id]
	if !ok {
		color, err := c.extractor.ExtractColor(frame, box)
		if err != nil {
			team = c.defaultTeam
			c.logger.Printf("Classify: Warning, could not sample player %d (box %+v), assigning team %d. got '%v'", id, box, team, err)
		} else {
			team = c.centroids.Nearest(color)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.assignments[id]; ok { // another goroutine classified this player meanwhile
		return existing, nil
	}
	c.assignments[id] = team

	return team, nil
}

// Team returns the team a player was assigned to, if any
func (c *Classifier) Team(id PlayerID) (TeamID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	team, ok := c.assignments[id]
	return team, ok
}

// Assignments returns a copy of every player's team
func (c *Classifier) Assignments() map[PlayerID]TeamID {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make(map[PlayerID]TeamID, len(c.assignments))
	for id, team := range c.assignments {
		res[id] = team
	}
	return res
}

// Centroids returns the team colors, for drawing
func (c *Classifier) Centroids() TeamCentroids {
	return c.centroids
}

// UsedFallback reports whether training had too few players and the fallback colors were installed
func (c *Classifier) UsedFallback() bool {
	return c.fallback
}
