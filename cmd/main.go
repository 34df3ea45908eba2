package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chenBenjamin97/team-assigner/pkg/api"
	"github.com/chenBenjamin97/team-assigner/pkg/team"
	"github.com/chenBenjamin97/team-assigner/pkg/video"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "team-assigner",
	Short: "Split the players of a game video into two teams by jersey color",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web client and API, tagging every uploaded video",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("frontend.static-files-path") == "" {
			return fmt.Errorf("missing critical configuration 'frontend.static-files-path'")
		}

		r := api.SetRouter()
		return r.Run(":" + viper.GetString("http.port"))
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <video>",
	Short: "Tag a video from the source directory and print where its teams summary is",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		video.Tag(args[0])

		summary, state := video.GetSummary(args[0])
		if state != video.Tagged {
			return fmt.Errorf("tagging '%s' failed, see log above", args[0])
		}

		for id, teamID := range summary.Assignments {
			fmt.Printf("player %d: team %d\n", id, teamID)
		}
		if summary.Centroids != nil {
			fmt.Printf("team 1 color %v, team 2 color %v\n", summary.Centroids.Color(team.Team1), summary.Centroids.Color(team.Team2))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(serveCmd, tagCmd)
}

func initConfig() error {
	viper.SetDefault("http.port", "8080")
	viper.SetDefault("video.prod_format", "mp4")

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// e.g. TEAM_ASSIGNER_TEAMS_DEFAULT_TEAM for teams.default_team
	viper.SetEnvPrefix("TEAM_ASSIGNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file, got '%v'", err)
	}

	if viper.GetString("directory.yolov4-deepsort") == "" {
		return fmt.Errorf("missing critical configuration 'directory.yolov4-deepsort'")
	}

	// fail early on a broken 'teams' section instead of on the first tagged video
	if _, err := team.ConfigFromViper(viper.GetViper()); err != nil {
		return err
	}

	// first - create project's data root dir
	if root := viper.GetString("directory.root"); root != "" {
		if err := os.MkdirAll(root, 0766); err != nil {
			log.Printf("Error Creating '%s' directory, got '%v'", root, err)
		}
	}

	// create missing directories from config file
	for key, dir := range viper.GetStringMapString("directory") {
		if key == "yolov4-deepsort" { // a script, not a directory
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				if err := os.Mkdir(dir, 0766); err != nil {
					log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
				}
			}
		}
	}

	return nil
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
