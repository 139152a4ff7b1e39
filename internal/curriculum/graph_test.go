package curriculum

import (
	"testing"
)

func minimalLesson(id string, order int, prereqs ...string) Lesson {
	return Lesson{
		ID:            id,
		Title:         "Lesson " + id,
		Order:         order,
		Difficulty:    1,
		Prerequisites: prereqs,
		Theory:        []TheorySegment{{Title: "t", Body: "b"}},
		Practice:      []Instruction{{Text: "draw"}},
		Assessment: Assessment{
			Criteria:     []Criterion{{ID: "c", Kind: CriterionAutomatic, Weight: 1}},
			PassingScore: 0.7,
		},
		RewardXP: 50,
	}
}

func testTree(id string, priority int, lessons ...Lesson) SkillTree {
	return SkillTree{ID: id, Name: id, Priority: priority, Lessons: lessons}
}

func TestRegister_DetectsCycle(t *testing.T) {
	g := NewGraph()
	err := g.Register(testTree("t", 1,
		minimalLesson("a", 1, "b"),
		minimalLesson("b", 2, "a"),
	))
	if err == nil {
		t.Fatal("expected error for cycle")
	}
	if !IsKind(err, KindCyclicPrerequisite) {
		t.Errorf("error kind = %v, want cyclic_prerequisite", err)
	}
}

func TestRegister_DetectsDanglingPrerequisite(t *testing.T) {
	g := NewGraph()
	err := g.Register(testTree("t", 1, minimalLesson("a", 1, "ghost")))
	if err == nil {
		t.Fatal("expected error for dangling prerequisite")
	}
	if !IsKind(err, KindDanglingPrerequisite) {
		t.Errorf("error kind = %v, want dangling_prerequisite", err)
	}
}

func TestRegister_DetectsDuplicateLesson(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t1", 1, minimalLesson("a", 1))); err != nil {
		t.Fatal(err)
	}
	err := g.Register(testTree("t2", 2, minimalLesson("a", 1)))
	if err == nil {
		t.Fatal("expected error for duplicate lesson id")
	}
	if !IsKind(err, KindDuplicateLesson) {
		t.Errorf("error kind = %v, want duplicate_lesson", err)
	}
}

func TestRegister_CrossTreePrerequisiteResolves(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t1", 1, minimalLesson("a", 1))); err != nil {
		t.Fatal(err)
	}
	if err := g.Register(testTree("t2", 2, minimalLesson("b", 1, "a"))); err != nil {
		t.Fatalf("cross-tree prerequisite to a registered lesson should be fine: %v", err)
	}
}

func TestRegister_FailedTreeLeavesGraphUnchanged(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t", 1, minimalLesson("a", 1, "ghost"))); err == nil {
		t.Fatal("expected registration failure")
	}
	if _, err := g.Lesson("a"); err == nil {
		t.Error("lesson from a rejected tree should not be registered")
	}
}

func TestLesson_NotFound(t *testing.T) {
	g := NewGraph()
	_, err := g.Lesson("nope")
	if !IsKind(err, KindNotFound) {
		t.Errorf("error = %v, want not_found", err)
	}
}

func TestIsUnlocked_Requirements(t *testing.T) {
	g := NewGraph()
	gated := minimalLesson("gated", 2, "base")
	gated.Unlocks = []UnlockRequirement{
		{Kind: UnlockLevel, Level: 3},
		{Kind: UnlockXP, XP: 500},
		{Kind: UnlockAchievement, Achievement: "steady-hand"},
	}
	if err := g.Register(testTree("t", 1, minimalLesson("base", 1), gated)); err != nil {
		t.Fatal(err)
	}
	lesson, _ := g.Lesson("gated")

	completed := map[string]bool{"base": true}
	cases := []struct {
		name  string
		facts LearnerFacts
		want  bool
	}{
		{"all requirements met", LearnerFacts{Level: 3, XP: 500, Achievements: map[string]bool{"steady-hand": true}}, true},
		{"level too low", LearnerFacts{Level: 2, XP: 500, Achievements: map[string]bool{"steady-hand": true}}, false},
		{"xp too low", LearnerFacts{Level: 3, XP: 499, Achievements: map[string]bool{"steady-hand": true}}, false},
		{"missing achievement", LearnerFacts{Level: 3, XP: 500}, false},
	}
	for _, tc := range cases {
		if got := g.IsUnlocked(lesson, completed, tc.facts); got != tc.want {
			t.Errorf("%s: IsUnlocked = %v, want %v", tc.name, got, tc.want)
		}
	}

	// Prerequisite missing trumps satisfied requirements.
	if g.IsUnlocked(lesson, map[string]bool{}, cases[0].facts) {
		t.Error("unlocked without prerequisite completed")
	}
}

// IsUnlocked is monotonic in the completed-set: adding completions never
// locks a lesson.
func TestIsUnlocked_MonotonicInCompletedSet(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t", 1,
		minimalLesson("a", 1),
		minimalLesson("b", 2, "a"),
		minimalLesson("c", 3, "a", "b"),
	)); err != nil {
		t.Fatal(err)
	}

	sets := []map[string]bool{
		{},
		{"a": true},
		{"a": true, "b": true},
		{"a": true, "b": true, "c": true},
	}
	for _, l := range []string{"a", "b", "c"} {
		lesson, _ := g.Lesson(l)
		prev := false
		for i, set := range sets {
			got := g.IsUnlocked(lesson, set, LearnerFacts{})
			if prev && !got {
				t.Errorf("lesson %s: unlocked at set %d but locked at superset %d", l, i-1, i)
			}
			prev = got
		}
	}
}

// A lesson with prerequisites appears in AvailableLessons only after they
// complete.
func TestAvailableLessons_PrerequisiteGating(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t", 1,
		minimalLesson("L1", 1),
		minimalLesson("L2", 2, "L1"),
	)); err != nil {
		t.Fatal(err)
	}

	has := func(lessons []Lesson, id string) bool {
		for _, l := range lessons {
			if l.ID == id {
				return true
			}
		}
		return false
	}

	before := g.AvailableLessons("", nil, LearnerFacts{})
	if has(before, "L2") {
		t.Error("L2 available before L1 completed")
	}
	if !has(before, "L1") {
		t.Error("L1 should be available from the start")
	}

	after := g.AvailableLessons("", map[string]bool{"L1": true}, LearnerFacts{})
	if !has(after, "L2") {
		t.Error("L2 not available after L1 completed")
	}
}

func TestAvailableLessons_DeterministicOrder(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("t", 1,
		minimalLesson("zeta", 2),
		minimalLesson("alpha", 2),
		minimalLesson("mid", 1),
	)); err != nil {
		t.Fatal(err)
	}
	got := g.AvailableLessons("t", nil, LearnerFacts{})
	want := []string{"mid", "alpha", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %d lessons, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRecommendNext_TreePriorityThenOrder(t *testing.T) {
	g := NewGraph()
	if err := g.Register(testTree("second", 2, minimalLesson("s1", 1))); err != nil {
		t.Fatal(err)
	}
	if err := g.Register(testTree("first", 1, minimalLesson("f1", 1), minimalLesson("f2", 2, "f1"))); err != nil {
		t.Fatal(err)
	}

	next := g.RecommendNext(nil, LearnerFacts{})
	if next == nil || next.ID != "f1" {
		t.Fatalf("RecommendNext = %v, want f1", next)
	}

	next = g.RecommendNext(map[string]bool{"f1": true}, LearnerFacts{})
	if next == nil || next.ID != "f2" {
		t.Fatalf("after f1, RecommendNext = %v, want f2", next)
	}

	next = g.RecommendNext(map[string]bool{"f1": true, "f2": true, "s1": true}, LearnerFacts{})
	if next != nil {
		t.Errorf("exhausted curriculum should recommend nil, got %v", next.ID)
	}
}
