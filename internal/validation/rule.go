// Package validation scores freehand drawings against declarative geometric
// rules. Evaluators are pure functions over stroke point sequences; a failed
// validation is a normal result, never an error.
package validation

import "fmt"

// RuleType tags a validation rule with its evaluator. The set is closed:
// adding a type means adding a variant here, an evaluator, and a case in
// evaluatorFor. Unknown tags in catalog data are a defect and surface as
// *UnknownRuleTypeError.
type RuleType string

const (
	TypeLineCount        RuleType = "line_count"
	TypeStrokeCount      RuleType = "stroke_count"
	TypeShapeAccuracy    RuleType = "shape_accuracy"
	TypePointPlacement   RuleType = "point_placement"
	TypePerspectiveLines RuleType = "perspective_lines"
	TypeShadingGradation RuleType = "shading_gradation"
	TypeCompletion       RuleType = "completion"
	TypeColorMatch       RuleType = "color_match"
	TypeClosure          RuleType = "closure"
)

// AllRuleTypes returns every registered rule type, for catalog schema
// generation and exhaustiveness tests.
func AllRuleTypes() []RuleType {
	return []RuleType{
		TypeLineCount,
		TypeStrokeCount,
		TypeShapeAccuracy,
		TypePointPlacement,
		TypePerspectiveLines,
		TypeShadingGradation,
		TypeCompletion,
		TypeColorMatch,
		TypeClosure,
	}
}

// Rule is a declarative check attached to a practice instruction or an
// assessment criterion. Params are interpreted per type; Threshold is the
// minimum accuracy in [0,1] required to pass.
type Rule struct {
	Type      RuleType       `json:"type"`
	Params    map[string]any `json:"params,omitempty"`
	Threshold float64        `json:"threshold"`
}

// Result is the outcome of evaluating one rule against one drawing.
type Result struct {
	Pass     bool    `json:"pass"`
	Accuracy float64 `json:"accuracy"`
}

// UnknownRuleTypeError reports a rule tag with no registered evaluator.
// It is propagated to the caller, never converted into a pass or fail.
type UnknownRuleTypeError struct {
	Type RuleType
}

func (e *UnknownRuleTypeError) Error() string {
	return fmt.Sprintf("unknown validation rule type %q", e.Type)
}

// paramFloat reads a numeric parameter, tolerating the float64/int mix that
// JSON decoding produces. Returns def when absent or non-numeric.
func (r Rule) paramFloat(key string, def float64) float64 {
	v, ok := r.Params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

// paramInt reads an integer parameter. Returns def when absent.
func (r Rule) paramInt(key string, def int) int {
	return int(r.paramFloat(key, float64(def)))
}

// paramString reads a string parameter. Returns def when absent.
func (r Rule) paramString(key, def string) string {
	if v, ok := r.Params[key].(string); ok {
		return v
	}
	return def
}
