package validation

import "github.com/halftone/sketchpath/internal/strokes"

// evaluator scores one drawing against one rule. Implementations are pure:
// no I/O, no shared state, deterministic for identical input.
type evaluator func(Rule, strokes.Drawing) Result

// evaluatorFor selects the evaluator for a rule type. The switch is the
// single dispatch point; an unhandled variant falls through to ok=false.
func evaluatorFor(t RuleType) (evaluator, bool) {
	switch t {
	case TypeLineCount:
		return evalLineCount, true
	case TypeStrokeCount:
		return evalStrokeCount, true
	case TypeShapeAccuracy:
		return evalShapeAccuracy, true
	case TypePointPlacement:
		return evalPointPlacement, true
	case TypePerspectiveLines:
		return evalPerspectiveLines, true
	case TypeShadingGradation:
		return evalShadingGradation, true
	case TypeCompletion:
		return evalCompletion, true
	case TypeColorMatch:
		return evalColorMatch, true
	case TypeClosure:
		return evalClosure, true
	}
	return nil, false
}

// Engine evaluates validation rules. It holds no mutable state; the type
// exists so callers hold an explicit instance instead of package globals.
type Engine struct{}

// NewEngine returns a rule engine covering the closed rule-type set.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate scores drawing against rule. A rule type with no evaluator
// returns *UnknownRuleTypeError; everything else is a normal Result,
// including failures.
func (e *Engine) Evaluate(rule Rule, drawing strokes.Drawing) (Result, error) {
	eval, ok := evaluatorFor(rule.Type)
	if !ok {
		return Result{}, &UnknownRuleTypeError{Type: rule.Type}
	}
	return eval(rule, drawing), nil
}
