package acl

// Permission is an identity-only token representing a grantable action.
type Permission struct {
	id    PermissionID
	label string
}

func NewPermission(id PermissionID, label string) Permission {
	return Permission{
		id:    id,
		label: label,
	}
}

func (p Permission) ID() PermissionID {
	return p.id
}

func (p Permission) Label() string {
	return p.label
}

func (p Permission) permissionID() PermissionID {
	return p.id
}
