package models

import "errors"

// Common errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a structural problem with a single input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BackingKind tells apart the reasons a pledge can be refused
type BackingKind string

const (
	BackingKindSelf      BackingKind = "self_backing"
	BackingKindDuplicate BackingKind = "duplicate_backing"
	BackingKindInactive  BackingKind = "project_not_active"
)

// BackingError is a business-rule rejection of a pledge. It is user-correctable
// and never retried.
type BackingError struct {
	Kind    BackingKind
	Message string
}

func (e *BackingError) Error() string {
	return e.Message
}

// Is matches any BackingError of the same kind, so errors.Is(err, ErrSelfBacking)
// works on wrapped or freshly built values.
func (e *BackingError) Is(target error) bool {
	t, ok := target.(*BackingError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrSelfBacking      = &BackingError{Kind: BackingKindSelf, Message: "You can't back your own projects"}
	ErrDuplicateBacking = &BackingError{Kind: BackingKindDuplicate, Message: "You have already backed this project"}
	ErrProjectNotActive = &BackingError{Kind: BackingKindInactive, Message: "You can only back active projects"}
)

// TransitionError is returned when a lifecycle action is not allowed from the
// project's current status.
type TransitionError struct {
	From   ProjectStatus
	Action string
}

func (e *TransitionError) Error() string {
	return "cannot " + e.Action + " a project in status " + string(e.From)
}

// Is lets errors.Is(err, ErrInvalidTransition) match every TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

var ErrInvalidTransition = errors.New("invalid project status transition")
