package acl

import (
	"errors"

	"code.cloudfoundry.org/acl/errdefs"
)

var (
	ErrInvalidParent = errors.New("acl: parent is not a group")

	ErrGroupNotFound      = errdefs.NewErrNotFound("group")
	ErrUserNotFound       = errdefs.NewErrNotFound("user")
	ErrServiceNotFound    = errdefs.NewErrNotFound("service")
	ErrPermissionNotFound = errdefs.NewErrNotFound("permission")

	ErrGroupAlreadyExists = errdefs.NewErrAlreadyExists("group")
	ErrUserAlreadyExists  = errdefs.NewErrAlreadyExists("user")

	ErrGroupHasDependents = errdefs.NewErrHasDependents("group")
)
