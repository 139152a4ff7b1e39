package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/store"
	"github.com/halftone/sketchpath/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest the next lesson to take",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ledger := progress.NewLedger(progress.LedgerConfig{
			Graph: graph,
			Repo:  st.ProgressRepo(),
		})
		next, err := ledger.Recommend(cmd.Context())
		if err != nil {
			return err
		}
		if next == nil {
			cmd.Println(theme.Subtitle.Render("Nothing left to recommend. The whole curriculum is complete!"))
			return nil
		}

		cmd.Printf("%s %s\n", theme.Highlight.Render("Next up:"), theme.Body.Render(next.Title))
		cmd.Println(theme.Subtitle.Render(fmt.Sprintf("  %s  %s  %d XP", next.ID, difficultyStars(next.Difficulty), next.RewardXP)))
		cmd.Println(theme.Hint.Render(fmt.Sprintf("  sketchpath run %s", next.ID)))
		return nil
	},
}
