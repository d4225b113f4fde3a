package errdefs // import "code.cloudfoundry.org/acl/errdefs"

import "fmt"

type ErrNotFound struct {
	model string
}

func NewErrNotFound(model string) ErrNotFound {
	return ErrNotFound{
		model: model,
	}
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", err.model)
}

type ErrAlreadyExists struct {
	model string
}

func NewErrAlreadyExists(model string) ErrAlreadyExists {
	return ErrAlreadyExists{
		model: model,
	}
}

func (err ErrAlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists", err.model)
}

// ErrTypeMismatch reports a bulk operation element that cannot serve as the
// expected entity kind. It records the operation and the argument position
// so equivalent call sites stay distinguishable in logs and tests.
type ErrTypeMismatch struct {
	op       string
	model    string
	position int
}

func NewErrTypeMismatch(op, model string, position int) ErrTypeMismatch {
	return ErrTypeMismatch{
		op:       op,
		model:    model,
		position: position,
	}
}

func (err ErrTypeMismatch) Error() string {
	return fmt.Sprintf("%s: argument %d is not a usable %s", err.op, err.position, err.model)
}

type ErrHasDependents struct {
	model string
}

func NewErrHasDependents(model string) ErrHasDependents {
	return ErrHasDependents{
		model: model,
	}
}

func (err ErrHasDependents) Error() string {
	return fmt.Sprintf("%s has dependents", err.model)
}

// ErrHierarchy wraps a rejection from the hierarchy collaborator,
// preserving the underlying cause.
type ErrHierarchy struct {
	cause error
}

func NewErrHierarchy(cause error) ErrHierarchy {
	return ErrHierarchy{
		cause: cause,
	}
}

func (err ErrHierarchy) Error() string {
	return fmt.Sprintf("hierarchy: %s", err.cause)
}

func (err ErrHierarchy) Unwrap() error {
	return err.cause
}
