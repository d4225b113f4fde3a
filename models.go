package acl

// Identity types for the four entity kinds. Ids are opaque and compared
// for exact equality only; there is no wildcard or hierarchical matching.
type (
	UserID       string
	GroupID      string
	ServiceID    string
	PermissionID string
)

// Each API boundary accepts either a bare identity or an entity instance.
// The ref interfaces are closed unions over those two forms; arguments are
// normalized to the identity type on entry.

type UserRef interface {
	userID() UserID
}

func (id UserID) userID() UserID { return id }

type GroupRef interface {
	groupID() GroupID
}

func (id GroupID) groupID() GroupID { return id }

type ServiceRef interface {
	serviceID() ServiceID
}

func (id ServiceID) serviceID() ServiceID { return id }

type PermissionRef interface {
	permissionID() PermissionID
}

func (id PermissionID) permissionID() PermissionID { return id }

// Assertion is an optional caller-supplied predicate consulted after the
// structural checks of IsAllowed have already passed. It can veto a
// decision but never grant one. The service id is empty when the check was
// not scoped to a service.
type Assertion func(user UserID, permission PermissionID, service ServiceID) bool
