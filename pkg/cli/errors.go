package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownAction is returned for an --action name that has no command.
var ErrUnknownAction = errors.New("unknown action")

// ActionError is a failure inside a menu action such as set_budget.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// NewActionError wraps err for action. A nil err stays nil.
func NewActionError(action string, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{Action: action, Err: err}
}

// UnknownAction reports name as unknown, listing the known names sorted.
// The result matches ErrUnknownAction.
func UnknownAction(name string, known []string) error {
	sorted := append([]string(nil), known...)
	sort.Strings(sorted)
	return fmt.Errorf("%w %q (want one of %s)", ErrUnknownAction, name, strings.Join(sorted, ", "))
}
