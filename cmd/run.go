package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halftone/sketchpath/internal/assets"
	"github.com/halftone/sketchpath/internal/curriculum"
	"github.com/halftone/sketchpath/internal/events"
	"github.com/halftone/sketchpath/internal/progress"
	"github.com/halftone/sketchpath/internal/render"
	"github.com/halftone/sketchpath/internal/session"
	"github.com/halftone/sketchpath/internal/store"
	"github.com/halftone/sketchpath/internal/strokes"
	"github.com/halftone/sketchpath/internal/ui/theme"
)

// lessonInput is the recorded input for one full lesson run: per
// instruction, the submissions in order (the last one is expected to
// pass), plus the assessment's manual scores and claimed bonuses.
type lessonInput struct {
	Steps   [][]strokes.Drawing `json:"steps"`
	Scores  map[string]float64  `json:"scores,omitempty"`
	Bonuses map[string]bool     `json:"bonuses,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run <lesson-id>",
	Short: "Run a lesson against recorded stroke input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLesson(cmd, args[0])
	},
}

func init() {
	runCmd.Flags().String("input", "", "Path to the recorded lesson input JSON (required)")
	runCmd.Flags().Bool("resume", false, "Resume a previously exited session for this lesson")
	runCmd.Flags().String("render-dir", "", "Export each passing step drawing as PNG into this directory")
	_ = runCmd.MarkFlagRequired("input")
}

func runLesson(cmd *cobra.Command, lessonID string) error {
	ctx := cmd.Context()

	inputPath, _ := cmd.Flags().GetString("input")
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var input lessonInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("parse input %s: %w", inputPath, err)
	}

	graph, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	lesson, err := graph.Lesson(lessonID)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

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
		Graph:       graph,
		Repo:        st.ProgressRepo(),
		Sink:        events.LogSink{Logger: logger},
		DailyGoalXP: progress.DefaultDailyGoalXP,
	})

	data, err := ledger.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !graph.IsUnlocked(lesson, data.Learning.Completed, progress.Facts(data)) {
		return fmt.Errorf("lesson %s is locked; check prerequisites with: sketchpath catalog", lessonID)
	}

	suspendedRepo := st.SuspendedRepo()
	machine := session.NewMachine(session.Config{
		Preloader: assets.NewHTTPPreloader(logger),
		Sink: events.MultiSink{
			&store.EventSink{Repo: st.EventRepo(), Logger: logger},
			events.LogSink{Logger: logger},
		},
		Recorder:  ledger,
		Suspended: suspendedRepo,
		Logger:    logger,
	})

	resume, _ := cmd.Flags().GetBool("resume")
	if resume {
		saved, err := suspendedRepo.LoadSuspended(ctx, lessonID)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("no suspended session for %s", lessonID)
		}
		if err := machine.Restore(lesson, *saved); err != nil {
			return err
		}
		if err := machine.Resume(); err != nil {
			return err
		}
		cmd.Println(theme.Subtitle.Render("Resuming where you left off."))
	} else {
		if err := machine.Start(ctx, lesson); err != nil {
			return err
		}
	}

	if err := runTheory(cmd, machine, lesson); err != nil {
		return err
	}
	if err := runPractice(cmd, machine, lesson, input.Steps); err != nil {
		return err
	}

	result, err := machine.Complete(ctx, session.AssessmentInput{
		Scores:  input.Scores,
		Bonuses: input.Bonuses,
	})
	if err != nil {
		// The scored result is held; the learner can rerun to retry
		// persisting it without redoing the lesson.
		if exitErr := machine.Exit(ctx); exitErr != nil {
			logger.Warn("suspend after failed completion", zap.Error(exitErr))
		}
		return fmt.Errorf("complete lesson: %w", err)
	}
	_ = suspendedRepo.DeleteSuspended(ctx, lessonID)

	printResult(cmd, result)

	if dir, _ := cmd.Flags().GetString("render-dir"); dir != "" {
		if err := renderSteps(dir, input.Steps); err != nil {
			return fmt.Errorf("render steps: %w", err)
		}
		cmd.Println(theme.Subtitle.Render("Drawings exported to " + dir))
	}
	return nil
}

// runTheory walks the remaining theory segments, printing each.
func runTheory(cmd *cobra.Command, machine *session.Machine, lesson curriculum.Lesson) error {
	st := machine.State()
	if st.Phase == session.PhaseTheory {
		for i := st.TheorySegment; i < len(lesson.Theory); i++ {
			seg := lesson.Theory[i]
			cmd.Println(theme.Title.Render(seg.Title))
			cmd.Println(theme.Body.Render(seg.Body))
			cmd.Println()
			if err := machine.AdvanceTheory(i); err != nil {
				return err
			}
		}
	}
	if machine.State().Phase == session.PhaseReadyForPractice {
		return machine.BeginPractice()
	}
	return nil
}

// runPractice replays the recorded submissions. A step whose submissions
// all fail suspends the session so the learner can retry later.
func runPractice(cmd *cobra.Command, machine *session.Machine, lesson curriculum.Lesson, steps [][]strokes.Drawing) error {
	st := machine.State()
	if st.Phase != session.PhasePractice {
		return nil
	}
	for i := st.CurrentInstruction; i < len(lesson.Practice); i++ {
		if i >= len(steps) {
			return suspendWith(cmd, machine, fmt.Errorf("input has no submissions for instruction %d", i))
		}
		ins := lesson.Practice[i]
		cmd.Printf("%s %s\n", theme.Highlight.Render(fmt.Sprintf("[%d/%d]", i+1, len(lesson.Practice))), theme.Body.Render(ins.Text))

		passed := false
		for _, drawing := range steps[i] {
			res, err := machine.SubmitStep(i, drawing)
			if err != nil {
				return err
			}
			if res.Passed {
				cmd.Println("  " + theme.Passed.Render(fmt.Sprintf("✓ passed (%.0f%%)", res.Accuracy*100)))
				passed = true
				break
			}
			cmd.Println("  " + theme.Failed.Render(fmt.Sprintf("✗ %.0f%%", res.Accuracy*100)))
			if res.Hint != "" {
				cmd.Println("  " + theme.Hint.Render("hint: "+res.Hint))
			}
		}
		if !passed {
			return suspendWith(cmd, machine, fmt.Errorf("instruction %d not passed", i))
		}
	}
	return nil
}

func suspendWith(cmd *cobra.Command, machine *session.Machine, cause error) error {
	if err := machine.Exit(cmd.Context()); err != nil {
		return fmt.Errorf("%v (suspend also failed: %w)", cause, err)
	}
	cmd.Println(theme.Subtitle.Render("Session suspended. Continue with: sketchpath run --resume"))
	return cause
}

func printResult(cmd *cobra.Command, result session.CompletionResult) {
	verdict := theme.Passed.Render("PASSED")
	if !result.Passed {
		verdict = theme.Failed.Render("NOT PASSED")
	}
	body := fmt.Sprintf("%s  %s\nScore: %.0f%%   XP: +%d   Time: %s",
		theme.Title.Render(result.LessonID),
		verdict,
		result.Score*100,
		result.XPEarned,
		result.Duration.Round(time.Second))
	for _, a := range result.Achievements {
		body += "\n" + theme.Highlight.Render("★ "+a)
	}
	cmd.Println(theme.Card.Render(body))
}

// renderSteps writes the final (passing) drawing of each step as a PNG.
func renderSteps(dir string, steps [][]strokes.Drawing) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, attempts := range steps {
		if len(attempts) == 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("step_%02d.png", i+1))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render.PNG(f, attempts[len(attempts)-1], render.Options{}); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
