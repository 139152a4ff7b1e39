package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halftone/sketchpath/internal/render"
	"github.com/halftone/sketchpath/internal/strokes"
)

var renderCmd = &cobra.Command{
	Use:   "render <drawing.json>",
	Short: "Render a recorded drawing to a PNG",
	Long: `Render reads a JSON drawing file (the stroke format accepted by
"run --input") and writes it out as a PNG. Useful for inspecting recorded
stroke data without driving a lesson.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read drawing: %w", err)
		}
		var d strokes.Drawing
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("parse drawing: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		opts := render.Options{Width: width, Height: height}
		if err := render.PNG(f, d, opts); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		cmd.Printf("wrote %s (%d strokes, %d points)\n", out, len(d.Strokes), d.PointCount())
		return nil
	},
}

func init() {
	renderCmd.Flags().String("out", "drawing.png", "output PNG path")
	renderCmd.Flags().Int("width", 0, "canvas width in pixels (0 = default)")
	renderCmd.Flags().Int("height", 0, "canvas height in pixels (0 = default)")
}
