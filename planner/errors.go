package planner

import "fmt"

// InvariantError reports an internal inconsistency detected during planning
// (§7: InvariantViolation). It is fatal: Plan aborts immediately and returns
// it as is, with a nil plan. Invariant names are stable strings,
// suitable for errors.As-based branching in callers that want to log the
// violated invariant without parsing the message.
type InvariantError struct {
	Invariant string // stable name, e.g. "entry-has-asset-and-dependency"
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("planner: invariant violated (%s): %s", e.Invariant, e.Detail)
}

// invariantf constructs an *InvariantError with a formatted detail message.
func invariantf(invariant, format string, args ...interface{}) error {
	return &InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}
