package acl

import (
	"sort"

	"code.cloudfoundry.org/acl/errdefs"
	"code.cloudfoundry.org/acl/graph"
)

// Group is a hierarchy node aggregating member users, group-local
// permissions, and shared services. It references externally-owned
// entities; it does not control their lifetime.
//
// All mutations are idempotent: adding a present element or deleting an
// absent one is a no-op. Bulk adds fail per element at the point of
// encounter; elements already processed in the same call stay applied.
type Group struct {
	id    GroupID
	label string

	users       map[UserID]*User
	permissions map[PermissionID]Permission
	services    map[ServiceID]Service
}

func NewGroup(id GroupID, label string) *Group {
	return &Group{
		id:          id,
		label:       label,
		users:       make(map[UserID]*User),
		permissions: make(map[PermissionID]Permission),
		services:    make(map[ServiceID]Service),
	}
}

func (g *Group) ID() GroupID {
	return g.id
}

func (g *Group) Label() string {
	return g.label
}

func (g *Group) groupID() GroupID {
	return g.id
}

// NodeID makes Group a graph.Node; the group id doubles as the hierarchy
// node id.
func (g *Group) NodeID() graph.NodeID {
	return graph.NodeID(g.id)
}

func (g *Group) AddUsers(users ...*User) error {
	for i, user := range users {
		if user == nil || user.id == "" {
			return errdefs.NewErrTypeMismatch("Group.AddUsers", "user", i)
		}

		g.users[user.id] = user
	}

	return nil
}

func (g *Group) DeleteUsers(users ...UserRef) {
	for _, user := range users {
		delete(g.users, user.userID())
	}
}

func (g *Group) UserExists(user UserRef) bool {
	_, exists := g.users[user.userID()]
	return exists
}

func (g *Group) GetUser(user UserRef) (*User, error) {
	u, exists := g.users[user.userID()]
	if !exists {
		return nil, ErrUserNotFound
	}

	return u, nil
}

func (g *Group) Users() []*User {
	users := make([]*User, 0, len(g.users))
	for _, user := range g.users {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].id < users[j].id
	})

	return users
}

func (g *Group) AddPermissions(permissions ...Permission) error {
	for i, permission := range permissions {
		if permission.id == "" {
			return errdefs.NewErrTypeMismatch("Group.AddPermissions", "permission", i)
		}

		g.permissions[permission.id] = permission
	}

	return nil
}

func (g *Group) DeletePermissions(permissions ...PermissionRef) {
	for _, permission := range permissions {
		delete(g.permissions, permission.permissionID())
	}
}

func (g *Group) PermissionExists(permission PermissionRef) bool {
	_, exists := g.permissions[permission.permissionID()]
	return exists
}

func (g *Group) GetPermission(permission PermissionRef) (Permission, error) {
	p, exists := g.permissions[permission.permissionID()]
	if !exists {
		return Permission{}, ErrPermissionNotFound
	}

	return p, nil
}

// Permissions returns a snapshot of the group-local permission set, sorted
// by id. Mutating the snapshot does not affect the group.
func (g *Group) Permissions() []Permission {
	permissions := make([]Permission, 0, len(g.permissions))
	for _, permission := range g.permissions {
		permissions = append(permissions, permission)
	}

	sort.Slice(permissions, func(i, j int) bool {
		return permissions[i].id < permissions[j].id
	})

	return permissions
}

func (g *Group) AddServices(services ...Service) error {
	for i, service := range services {
		if service.id == "" {
			return errdefs.NewErrTypeMismatch("Group.AddServices", "service", i)
		}

		g.services[service.id] = service
	}

	return nil
}

func (g *Group) DeleteServices(services ...ServiceRef) {
	for _, service := range services {
		delete(g.services, service.serviceID())
	}
}

func (g *Group) ServiceExists(service ServiceRef) bool {
	_, exists := g.services[service.serviceID()]
	return exists
}

func (g *Group) GetService(service ServiceRef) (Service, error) {
	s, exists := g.services[service.serviceID()]
	if !exists {
		return Service{}, ErrServiceNotFound
	}

	return s, nil
}

func (g *Group) Services() []Service {
	services := make([]Service, 0, len(g.services))
	for _, service := range g.services {
		services = append(services, service)
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].id < services[j].id
	})

	return services
}

// member is the engine-side membership check; it returns the member's User
// instance so service ownership can be resolved against it.
func (g *Group) member(id UserID) (*User, bool) {
	user, exists := g.users[id]
	return user, exists
}
