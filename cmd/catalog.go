package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/store"
	"github.com/halftone/sketchpath/internal/ui/theme"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List skill trees and lessons with their lock status",
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
			data = progress.NewData(0)
		}
		facts := progress.Facts(data)

		var b strings.Builder
		for _, tree := range graph.Trees() {
			fmt.Fprintf(&b, "%s %s\n",
				theme.Title.Render(tree.Name),
				theme.Subtitle.Render(fmt.Sprintf("(%s, %d XP total)", tree.ID, tree.TotalXP())))
			for _, lesson := range tree.Lessons {
				b.WriteString("  ")
				b.WriteString(renderLessonLine(graph, lesson, data, facts))
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
		cmd.Print(b.String())
		return nil
	},
}

func renderLessonLine(graph *curriculum.Graph, lesson curriculum.Lesson, data *progress.Data, facts curriculum.LearnerFacts) string {
	label := fmt.Sprintf("%-24s %s  %s",
		lesson.ID,
		difficultyStars(lesson.Difficulty),
		lesson.Title)

	switch {
	case data.Learning.Completed[lesson.ID]:
		return theme.Passed.Render("✓ ") + theme.Body.Render(label)
	case graph.IsUnlocked(lesson, data.Learning.Completed, facts):
		return theme.Highlight.Render("○ ") + theme.Body.Render(label)
	default:
		return theme.Locked.Render("🔒 " + label)
	}
}

func difficultyStars(d int) string {
	return strings.Repeat("★", d) + strings.Repeat("☆", 5-d)
}
