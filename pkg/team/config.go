package team

import (
	"fmt"

	"github.com/spf13/viper"
)

// Override forces a player to a team regardless of jersey color, e.g. a referee the tracker reports as a player
type Override struct {
	Player PlayerID `mapstructure:"player" json:"player"`
	Team   TeamID   `mapstructure:"team" json:"team"`
}

// Config tunes the extractor and classifier
type Config struct {
	FallbackColor     Color         // returned for regions that can't be sampled
	FallbackCentroids TeamCentroids // installed when training sees fewer than two usable players
	ExtractRestarts   int           // k-means initializations per player crop
	TrainRestarts     int           // k-means initializations when learning team colors
	DefaultTeam       TeamID        // assigned to players whose jersey region fails to cluster
	Overrides         []Override
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		FallbackColor:     FallbackGray,
		FallbackCentroids: FallbackCentroids,
		ExtractRestarts:   1,
		TrainRestarts:     10,
		DefaultTeam:       Team1,
	}
}

// Validate checks every team ID in c is one of the two teams and clamps restart counts to at least one
func (c *Config) Validate() error {
	if c.ExtractRestarts < 1 {
		c.ExtractRestarts = 1
	}
	if c.TrainRestarts < 1 {
		c.TrainRestarts = 1
	}

	if !c.DefaultTeam.Valid() {
		return fmt.Errorf("Validate: invalid default team %d", c.DefaultTeam)
	}

	for _, o := range c.Overrides {
		if !o.Team.Valid() {
			return fmt.Errorf("Validate: invalid team %d in override for player %d", o.Team, o.Player)
		}
	}

	return nil
}

// ConfigFromViper reads the 'teams' section of the configuration on top of DefaultConfig
func ConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	if v.IsSet("teams.fallback_color") {
		c, err := colorFromSlice(v.GetIntSlice("teams.fallback_color"))
		if err != nil {
			return cfg, fmt.Errorf("ConfigFromViper: teams.fallback_color: %w", err)
		}
		cfg.FallbackColor = c
	}

	for i, key := range []string{"teams.fallback_centroids.team1", "teams.fallback_centroids.team2"} {
		if !v.IsSet(key) {
			continue
		}
		c, err := colorFromSlice(v.GetIntSlice(key))
		if err != nil {
			return cfg, fmt.Errorf("ConfigFromViper: %s: %w", key, err)
		}
		cfg.FallbackCentroids[i] = c
	}

	if v.IsSet("teams.extract_restarts") {
		cfg.ExtractRestarts = v.GetInt("teams.extract_restarts")
	}
	if v.IsSet("teams.train_restarts") {
		cfg.TrainRestarts = v.GetInt("teams.train_restarts")
	}
	if v.IsSet("teams.default_team") {
		cfg.DefaultTeam = TeamID(v.GetInt("teams.default_team"))
	}

	if v.IsSet("teams.overrides") {
		if err := v.UnmarshalKey("teams.overrides", &cfg.Overrides); err != nil {
			return cfg, fmt.Errorf("ConfigFromViper: teams.overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
