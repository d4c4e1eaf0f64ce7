package manager

import "fmt"

// NotFoundError is returned by Registry.ByID for an unregistered manager id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown package manager: %s", e.ID)
}

// SelectionError reports a usage error in the caller's include/exclude lists.
// It is raised before any dispatch occurs.
type SelectionError struct {
	ID   string
	List string // "include" or "exclude"
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("unknown manager %q in %s list", e.ID, e.List)
}

// FatalFailure is the distinguished marker returned by Dispatcher.Run under
// the stop-on-error policy when an adapter invocation fails fatally. The
// partial report list returned alongside it ends with the failed report.
type FatalFailure struct {
	Manager string
	Reason  string
}

func (e *FatalFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Manager, e.Reason)
}
