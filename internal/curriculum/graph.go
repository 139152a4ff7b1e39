package curriculum

import (
	"fmt"
	"sort"
)

// Graph is the registered curriculum: skill trees indexed for lesson lookup
// and unlock queries. Construct with NewGraph and Register; immutable
// afterwards from the caller's point of view. Prerequisite edges may cross
// trees, but only toward lessons already registered.
type Graph struct {
	trees      []*SkillTree
	treeByID   map[string]*SkillTree
	lessonByID map[string]*Lesson
	treeOf     map[string]string
}

// NewGraph returns an empty curriculum graph.
func NewGraph() *Graph {
	return &Graph{
		treeByID:   make(map[string]*SkillTree),
		lessonByID: make(map[string]*Lesson),
		treeOf:     make(map[string]string),
	}
}

// Register validates and adds a skill tree. It fails with a typed
// *GraphError on duplicate ids, dangling prerequisites, or prerequisite
// cycles, leaving the graph unchanged.
func (g *Graph) Register(tree SkillTree) error {
	if _, exists := g.treeByID[tree.ID]; exists {
		return &GraphError{Kind: KindDuplicateLesson, Detail: fmt.Sprintf("skill tree %q already registered", tree.ID)}
	}
	if err := g.validateTree(tree); err != nil {
		return err
	}

	t := tree
	// Lessons sorted by order, ties by id, so positional queries are
	// deterministic regardless of catalog file ordering.
	sort.SliceStable(t.Lessons, func(i, j int) bool {
		if t.Lessons[i].Order != t.Lessons[j].Order {
			return t.Lessons[i].Order < t.Lessons[j].Order
		}
		return t.Lessons[i].ID < t.Lessons[j].ID
	})

	g.trees = append(g.trees, &t)
	sort.SliceStable(g.trees, func(i, j int) bool {
		if g.trees[i].Priority != g.trees[j].Priority {
			return g.trees[i].Priority < g.trees[j].Priority
		}
		return g.trees[i].ID < g.trees[j].ID
	})
	g.treeByID[t.ID] = &t
	for i := range t.Lessons {
		l := &t.Lessons[i]
		g.lessonByID[l.ID] = l
		g.treeOf[l.ID] = t.ID
	}
	return nil
}

// Lesson returns the lesson with the given id, or a NotFound *GraphError.
func (g *Graph) Lesson(id string) (Lesson, error) {
	l, ok := g.lessonByID[id]
	if !ok {
		return Lesson{}, &GraphError{Kind: KindNotFound, Detail: fmt.Sprintf("lesson %q", id)}
	}
	return *l, nil
}

// Tree returns the skill tree with the given id, or a NotFound *GraphError.
func (g *Graph) Tree(id string) (SkillTree, error) {
	t, ok := g.treeByID[id]
	if !ok {
		return SkillTree{}, &GraphError{Kind: KindNotFound, Detail: fmt.Sprintf("skill tree %q", id)}
	}
	return *t, nil
}

// Trees returns all registered trees in priority order.
func (g *Graph) Trees() []SkillTree {
	out := make([]SkillTree, 0, len(g.trees))
	for _, t := range g.trees {
		out = append(out, *t)
	}
	return out
}

// TreeOf returns the id of the tree containing the given lesson
// ("" if unregistered).
func (g *Graph) TreeOf(lessonID string) string {
	return g.treeOf[lessonID]
}

// IsUnlocked reports whether every prerequisite of the lesson is in
// completed and every unlock requirement holds against facts. Predicates
// are evaluated in list order and short-circuit on the first failure; they
// are side-effect-free, so order affects only cost.
func (g *Graph) IsUnlocked(lesson Lesson, completed map[string]bool, facts LearnerFacts) bool {
	for _, pre := range lesson.Prerequisites {
		if !completed[pre] {
			return false
		}
	}
	for _, req := range lesson.Unlocks {
		if !requirementHolds(req, completed, facts) {
			return false
		}
	}
	return true
}

func requirementHolds(req UnlockRequirement, completed map[string]bool, facts LearnerFacts) bool {
	switch req.Kind {
	case UnlockLesson:
		return completed[req.Lesson]
	case UnlockLevel:
		return facts.Level >= req.Level
	case UnlockXP:
		return facts.XP >= req.XP
	case UnlockAchievement:
		return facts.Achievements[req.Achievement]
	}
	// Unknown kinds never hold; the loader schema rejects them up front.
	return false
}

// AvailableLessons returns the unlocked lessons, sorted ascending by order
// with ties broken by lesson id. treeID restricts the query to one tree;
// "" spans the whole curriculum (tree priority order first).
func (g *Graph) AvailableLessons(treeID string, completed map[string]bool, facts LearnerFacts) []Lesson {
	var out []Lesson
	for _, t := range g.trees {
		if treeID != "" && t.ID != treeID {
			continue
		}
		for _, l := range t.Lessons {
			if g.IsUnlocked(l, completed, facts) {
				out = append(out, l)
			}
		}
	}
	return out
}

// RecommendNext returns the first available-but-not-completed lesson by
// tree priority then lesson order, or nil when the curriculum is exhausted.
func (g *Graph) RecommendNext(completed map[string]bool, facts LearnerFacts) *Lesson {
	for _, t := range g.trees {
		for _, l := range t.Lessons {
			if completed[l.ID] {
				continue
			}
			if g.IsUnlocked(l, completed, facts) {
				lesson := l
				return &lesson
			}
		}
	}
	return nil
}
