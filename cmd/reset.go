package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halftone/sketchpath/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learner progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to erase progress without --yes")
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

		if err := st.ProgressRepo().Reset(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Progress erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm erasing all progress")
}
