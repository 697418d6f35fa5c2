package autostart

import (
	"errors"
	"fmt"
)

var errNoSettings = errors.New("no settings store configured")

// Kind says which collaborator an Error came from.
type Kind int

const (
	// KindSettingsRead means the settings store could not be read.
	KindSettingsRead Kind = iota + 1
	// KindManager means the auto-launch manager refused the change.
	KindManager
)

func (k Kind) String() string {
	switch k {
	case KindSettingsRead:
		return "settings read"
	case KindManager:
		return "manager"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is the registration change that was attempted.
type Action string

// Actions passed to the auto-launch manager.
const (
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

// Error is returned by Sync. Err is always the underlying cause.
type Error struct {
	Err    error
	Action Action // empty for KindSettingsRead
	Kind   Kind
}

// Error keeps settings read failures verbatim and annotates manager
// failures with the attempted action.
func (e *Error) Error() string {
	if e.Kind == KindManager {
		return fmt.Sprintf("failed to %s auto start: %v", e.Action, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k anywhere in its chain.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
