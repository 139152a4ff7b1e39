package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/store"
	"github.com/halftone/sketchpath/internal/ui/theme"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show XP, streaks, and per-tree completion",
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

		data, err := st.ProgressRepo().Load(cmd.Context())
		if err != nil {
			return err
		}
		if data == nil {
			cmd.Println(theme.Subtitle.Render("No progress yet. Start with: sketchpath recommend"))
			return nil
		}

		lp := data.Learning
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", theme.Title.Render("Progress"))
		fmt.Fprintf(&b, "  Level %s  %s XP\n",
			theme.Highlight.Render(fmt.Sprintf("%d", progress.LevelForXP(lp.TotalXP))),
			theme.Highlight.Render(fmt.Sprintf("%d", lp.TotalXP)))
		fmt.Fprintf(&b, "  Streak: %d day(s), longest %d\n", lp.CurrentStreak, lp.LongestStreak)
		if lp.DailyGoalXP > 0 {
			status := fmt.Sprintf("%d / %d XP today", lp.DailyXP, lp.DailyGoalXP)
			if lp.DailyXP >= lp.DailyGoalXP {
				b.WriteString("  Daily goal: " + theme.Passed.Render(status+" ✓") + "\n")
			} else {
				b.WriteString("  Daily goal: " + theme.Body.Render(status) + "\n")
			}
		}
		b.WriteByte('\n')

		for _, tree := range graph.Trees() {
			tp := data.Trees[tree.ID]
			if tp == nil {
				fmt.Fprintf(&b, "  %-20s %s\n", tree.Name, theme.Subtitle.Render("not started"))
				continue
			}
			fmt.Fprintf(&b, "  %-20s %s  %d XP\n",
				tree.Name,
				progressBar(tp.CompletionPercent, 20),
				tp.XP)
		}

		if len(lp.Achievements) > 0 {
			b.WriteByte('\n')
			fmt.Fprintf(&b, "  %s %d unlocked\n", theme.Highlight.Render("Achievements:"), len(lp.Achievements))
		}

		recent, err := st.EventRepo().RecentCompletions(cmd.Context(), 5)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			b.WriteByte('\n')
			b.WriteString(theme.Subtitle.Render("  Recent lessons:") + "\n")
			for _, ev := range recent {
				mark := theme.Passed.Render("✓")
				if !ev.Passed {
					mark = theme.Failed.Render("✗")
				}
				fmt.Fprintf(&b, "  %s %-24s %3.0f%%  +%d XP\n", mark, ev.LessonID, ev.Score*100, ev.XPEarned)
			}
		}

		cmd.Print(b.String())
		return nil
	},
}

// progressBar renders completion as a fixed-width bar.
func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return theme.Highlight.Render(bar) + fmt.Sprintf(" %3.0f%%", fraction*100)
}
