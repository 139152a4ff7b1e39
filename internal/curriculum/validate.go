package curriculum

import (
	"fmt"

	"github.com/halftone/sketchpath/internal/validation"
)

// validateTree runs the structural checks for a tree being registered into
// the current graph. The first defect found is returned as a typed
// *GraphError, so callers can branch on the kind.
func (g *Graph) validateTree(tree SkillTree) error {
	// Duplicate lesson ids, within the tree and against the graph.
	seen := make(map[string]bool, len(tree.Lessons))
	for _, l := range tree.Lessons {
		if seen[l.ID] {
			return &GraphError{Kind: KindDuplicateLesson, Detail: fmt.Sprintf("lesson %q appears twice in tree %q", l.ID, tree.ID)}
		}
		if _, exists := g.lessonByID[l.ID]; exists {
			return &GraphError{Kind: KindDuplicateLesson, Detail: fmt.Sprintf("lesson %q already registered", l.ID)}
		}
		seen[l.ID] = true
	}

	// Dangling prerequisites: every edge must land on a lesson that is
	// already registered or part of this tree.
	resolves := func(id string) bool {
		_, ok := g.lessonByID[id]
		return ok || seen[id]
	}
	for _, l := range tree.Lessons {
		for _, pre := range l.Prerequisites {
			if !resolves(pre) {
				return &GraphError{Kind: KindDanglingPrerequisite, Detail: fmt.Sprintf("lesson %q references unregistered prerequisite %q", l.ID, pre)}
			}
		}
		for _, req := range l.Unlocks {
			if req.Kind == UnlockLesson && !resolves(req.Lesson) {
				return &GraphError{Kind: KindDanglingPrerequisite, Detail: fmt.Sprintf("lesson %q unlock requirement references unregistered lesson %q", l.ID, req.Lesson)}
			}
		}
	}

	if err := g.checkAcyclic(tree); err != nil {
		return err
	}

	for _, l := range tree.Lessons {
		if err := validateLesson(l); err != nil {
			return err
		}
	}
	return nil
}

// checkAcyclic runs Kahn's algorithm over the union of the existing graph
// and the incoming tree. Anything left with a positive in-degree sits on a
// cycle.
func (g *Graph) checkAcyclic(tree SkillTree) error {
	prereqs := make(map[string][]string)
	for id, l := range g.lessonByID {
		prereqs[id] = l.Prerequisites
	}
	for _, l := range tree.Lessons {
		prereqs[l.ID] = l.Prerequisites
	}

	inDegree := make(map[string]int, len(prereqs))
	dependents := make(map[string][]string)
	for id, pres := range prereqs {
		inDegree[id] = len(pres)
		for _, pre := range pres {
			dependents[pre] = append(dependents[pre], id)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if visited < len(prereqs) {
		var stuck []string
		for id, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		return &GraphError{Kind: KindCyclicPrerequisite, Detail: fmt.Sprintf("prerequisite cycle involving %v", stuck)}
	}
	return nil
}

// validateLesson checks lesson-local data: difficulty range, rule types and
// thresholds, assessment weights. Defects are curriculum data bugs and
// fatal at load.
func validateLesson(l Lesson) error {
	fail := func(format string, args ...any) error {
		return &GraphError{Kind: KindInvalidLesson, Detail: fmt.Sprintf("lesson %q: ", l.ID) + fmt.Sprintf(format, args...)}
	}

	if l.Difficulty < 1 || l.Difficulty > 5 {
		return fail("difficulty %d outside 1-5", l.Difficulty)
	}
	if l.RewardXP < 0 {
		return fail("negative reward XP %d", l.RewardXP)
	}

	known := make(map[validation.RuleType]bool)
	for _, rt := range validation.AllRuleTypes() {
		known[rt] = true
	}
	for i, ins := range l.Practice {
		if ins.Rule == nil {
			continue
		}
		if !known[ins.Rule.Type] {
			return fail("practice step %d uses unknown rule type %q", i, ins.Rule.Type)
		}
		if ins.Rule.Threshold < 0 || ins.Rule.Threshold > 1 {
			return fail("practice step %d threshold %f outside [0,1]", i, ins.Rule.Threshold)
		}
	}

	if l.Assessment.PassingScore < 0 || l.Assessment.PassingScore > 1 {
		return fail("passing score %f outside [0,1]", l.Assessment.PassingScore)
	}
	var weightSum float64
	for _, c := range l.Assessment.Criteria {
		if c.Weight <= 0 {
			return fail("criterion %q has non-positive weight %f", c.ID, c.Weight)
		}
		weightSum += c.Weight
		for _, idx := range c.Instructions {
			if idx < 0 || idx >= len(l.Practice) {
				return fail("criterion %q references practice step %d of %d", c.ID, idx, len(l.Practice))
			}
		}
	}
	if len(l.Assessment.Criteria) > 0 && weightSum == 0 {
		return fail("assessment criteria weights sum to zero")
	}
	return nil
}
