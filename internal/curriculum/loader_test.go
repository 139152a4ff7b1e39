package curriculum

import (
	"strings"
	"testing"
)

func TestDefaultGraph_Loads(t *testing.T) {
	g, err := DefaultGraph()
	if err != nil {
		t.Fatalf("embedded catalog failed to load: %v", err)
	}
	trees := g.Trees()
	if len(trees) != 2 {
		t.Fatalf("got %d trees, want 2", len(trees))
	}
	if trees[0].ID != "line-work" {
		t.Errorf("first tree by priority = %s, want line-work", trees[0].ID)
	}

	// Every prerequisite in the shipped catalog resolves.
	for _, tree := range trees {
		for _, l := range tree.Lessons {
			for _, pre := range l.Prerequisites {
				if _, err := g.Lesson(pre); err != nil {
					t.Errorf("lesson %s prerequisite %s does not resolve", l.ID, pre)
				}
			}
		}
	}
}

func TestLoadCatalog_RejectsMalformedJSON(t *testing.T) {
	if _, err := LoadCatalog([]byte(`{"trees": [`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadCatalog_SchemaRejectsMissingFields(t *testing.T) {
	doc := `{"trees": [{"id": "t", "name": "T", "lessons": [{"id": "l"}]}]}`
	_, err := LoadCatalog([]byte(doc))
	if err == nil {
		t.Fatal("expected schema violation for lesson missing required fields")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("error should mention schema validation, got: %v", err)
	}
}

func TestLoadCatalog_SchemaRejectsUnknownRuleType(t *testing.T) {
	doc := `{"trees": [{"id": "t", "name": "T", "lessons": [{
		"id": "l", "title": "L", "order": 1, "difficulty": 1, "reward_xp": 10,
		"theory": [{"title": "a", "body": "b"}],
		"practice": [{"text": "draw", "rule": {"type": "telepathy", "threshold": 0.5}}],
		"assessment": {"criteria": [{"id": "c", "kind": "automatic", "weight": 1}], "passing_score": 0.7}
	}]}]}`
	if _, err := LoadCatalog([]byte(doc)); err == nil {
		t.Error("expected schema violation for unknown rule type")
	}
}

func TestLoadCatalog_RejectsDanglingPrerequisite(t *testing.T) {
	doc := `{"trees": [{"id": "t", "name": "T", "lessons": [{
		"id": "l", "title": "L", "order": 1, "difficulty": 1, "reward_xp": 10,
		"prerequisites": ["missing"],
		"theory": [{"title": "a", "body": "b"}],
		"practice": [{"text": "draw"}],
		"assessment": {"criteria": [{"id": "c", "kind": "automatic", "weight": 1}], "passing_score": 0.7}
	}]}]}`
	_, err := LoadCatalog([]byte(doc))
	if !IsKind(err, KindDanglingPrerequisite) {
		t.Errorf("error = %v, want dangling_prerequisite", err)
	}
}
