package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sketchpath",
	Short: "Guided drawing curriculum",
	Long:  "Sketchpath is a terminal drawing tutor that walks you through skill trees of lessons, scores your strokes, and tracks your progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKETCHPATH_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a lesson catalog JSON file (defaults to the built-in catalog)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SKETCHPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadGraph builds the curriculum graph from --catalog or the embedded
// catalog.
func loadGraph(cmd *cobra.Command) (*curriculum.Graph, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return curriculum.DefaultGraph()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	graph, err := curriculum.LoadCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return graph, nil
}

// newLogger builds the process logger; --verbose switches to development
// output with debug level.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
