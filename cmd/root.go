package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vidyayathra/tutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vidya",
	Short: "Adaptive Socratic tutoring backend",
	Long:  "Vidya tracks each learner's working memory and serves adaptively selected questions to the dashboard over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VIDYA_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VIDYA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveVectorsPath places the embedding store next to the database
// unless VIDYA_VECTORS points elsewhere.
func resolveVectorsPath(dbPath string) string {
	if p := os.Getenv("VIDYA_VECTORS"); p != "" {
		return p
	}
	return filepath.Join(filepath.Dir(dbPath), "vectors.json")
}
