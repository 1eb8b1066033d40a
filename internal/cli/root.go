// Package cli implements the command-line interface for cubescene.
package cli

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescene"
)

const version = "0.1.0"

// envConfig holds environment-variable defaults; flags override them.
type envConfig struct {
	DBPath        string `env:"CUBESCENE_DB"`
	FPS           int    `env:"CUBESCENE_FPS" envDefault:"30"`
	ShuffleLength int    `env:"CUBESCENE_SHUFFLE_LEN" envDefault:"12"`
}

var (
	// Global flags
	dbPath    string
	sceneFile string
	verbose   bool

	envCfg envConfig
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubescene",
	Short: "Animated virtual Rubik's cube",
	Long: `cubescene - An animated virtual 3x3x3 twisty puzzle.

Generate and play shuffles, drive the cube interactively from the terminal
or from a physical smart cube, and browse the journal of played sessions.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := env.Parse(&envCfg); err != nil {
			return fmt.Errorf("failed to parse environment: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.cubescene/journal.db or $CUBESCENE_DB)")
	rootCmd.PersistentFlags().StringVar(&sceneFile, "scene", "", "Scene asset JSON file (default: embedded 27-cubie scene)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// newCube builds a cube from the --scene asset, or from the embedded
// default scene when none is given.
func newCube(opts ...cubescene.Option) (*cubescene.Cube, error) {
	var (
		root *cubescene.Node
		err  error
	)
	if sceneFile != "" {
		root, err = cubescene.LoadSceneFile(sceneFile)
	} else {
		root, err = cubescene.DefaultScene()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	return cubescene.New(root, opts...)
}

// getDBPath returns the journal path from flag, environment, or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return envCfg.DBPath // empty means use the storage default
}
