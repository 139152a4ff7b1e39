package curriculum

import (
	"errors"
	"fmt"
)

// GraphErrorKind classifies catalog configuration errors. All of them are
// fatal at load time.
type GraphErrorKind string

const (
	KindCyclicPrerequisite   GraphErrorKind = "cyclic_prerequisite"
	KindDanglingPrerequisite GraphErrorKind = "dangling_prerequisite"
	KindDuplicateLesson      GraphErrorKind = "duplicate_lesson"
	KindInvalidLesson        GraphErrorKind = "invalid_lesson"
	KindNotFound             GraphErrorKind = "not_found"
)

// GraphError reports a structural defect in the curriculum catalog.
type GraphError struct {
	Kind   GraphErrorKind
	Detail string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("curriculum: %s: %s", e.Kind, e.Detail)
}

// IsKind reports whether err is (or wraps) a *GraphError of the given kind.
func IsKind(err error, kind GraphErrorKind) bool {
	var ge *GraphError
	return errors.As(err, &ge) && ge.Kind == kind
}
