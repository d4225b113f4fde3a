package acl

import (
	"code.cloudfoundry.org/acl/errdefs"
	"code.cloudfoundry.org/acl/graph"
	"code.cloudfoundry.org/acl/logging"
	"code.cloudfoundry.org/acl/logx"
)

const (
	success = "success"

	errHierarchyRejected = "hierarchy-rejected"
	errGroupNotFound     = "group-not-found"

	decisionSignature = "acl.decision"
	decisionAllowed   = "allowed"
	decisionDenied    = "denied"
)

//go:generate counterfeiter . SecurityLogger

// SecurityLogger receives an audit event for every IsAllowed verdict.
type SecurityLogger interface {
	Log(signature, name string, args ...logging.CustomExtension)
}

// ACL is the decision engine. It owns the group hierarchy and the user
// registry, and is the sole entry point for permission decisions.
//
// The engine is synchronous and performs no I/O. Mutations assume a
// single-writer-at-a-time discipline imposed by the embedder; read-only
// IsAllowed calls may run concurrently with each other while no mutation
// is in flight.
type ACL struct {
	hierarchy *graph.Graph
	users     map[UserID]*User

	logger         logx.Logger
	securityLogger SecurityLogger
}

func New(opts ...Option) *ACL {
	config := &options{
		logger:         logx.NewNoOpLogger(),
		securityLogger: &emptySecurityLogger{},
	}

	for _, opt := range opts {
		opt(config)
	}

	return &ACL{
		hierarchy:      graph.New(),
		users:          make(map[UserID]*User),
		logger:         config.logger,
		securityLogger: config.securityLogger,
	}
}

// AddGroup inserts group as a hierarchy node whose parents are parents; no
// parents makes it a root. A nil parent ref fails with ErrInvalidParent; a
// rejection from the hierarchy (duplicate node, unknown parent, would-be
// cycle) is wrapped in an errdefs.ErrHierarchy.
func (a *ACL) AddGroup(group *Group, parents ...GroupRef) error {
	logger := a.logger.WithName("add-group")

	if group == nil {
		return errdefs.NewErrTypeMismatch("ACL.AddGroup", "group", 0)
	}

	parentIDs := make([]graph.NodeID, 0, len(parents))
	for _, parent := range parents {
		if parent == nil {
			return ErrInvalidParent
		}
		parentIDs = append(parentIDs, graph.NodeID(parent.groupID()))
	}

	if err := a.hierarchy.AddNode(group, parentIDs...); err != nil {
		logger.Error(errHierarchyRejected, err, logx.Data{Key: "group.id", Value: group.id})
		return errdefs.NewErrHierarchy(err)
	}

	logger.Debug(success, logx.Data{Key: "group.id", Value: group.id})
	return nil
}

// DeleteGroup removes the group's node. Without cascade a group with
// children fails with ErrGroupHasDependents and the hierarchy is left
// untouched; with cascade all descendant groups are removed as well.
func (a *ACL) DeleteGroup(group GroupRef, cascade bool) error {
	logger := a.logger.WithName("delete-group")

	id := group.groupID()

	switch err := a.hierarchy.DeleteNode(graph.NodeID(id), cascade); err {
	case nil:
		logger.Debug(success, logx.Data{Key: "group.id", Value: id})
		return nil
	case graph.ErrNodeNotFound:
		logger.Error(errGroupNotFound, err, logx.Data{Key: "group.id", Value: id})
		return ErrGroupNotFound
	case graph.ErrHasChildren:
		return ErrGroupHasDependents
	default:
		return errdefs.NewErrHierarchy(err)
	}
}

// Allow grants permissions to the group's local permission set. The group
// must already be registered in the hierarchy.
func (a *ACL) Allow(group GroupRef, permissions ...Permission) error {
	g, err := a.group(group)
	if err != nil {
		return err
	}

	return g.AddPermissions(permissions...)
}

// Deny removes permissions from the group's local permission set. Denying
// an absent permission is a no-op.
func (a *ACL) Deny(group GroupRef, permissions ...PermissionRef) error {
	g, err := a.group(group)
	if err != nil {
		return err
	}

	g.DeletePermissions(permissions...)
	return nil
}

func (a *ACL) GroupExists(group GroupRef) bool {
	return a.hierarchy.NodeExists(graph.NodeID(group.groupID()))
}

func (a *ACL) GetGroup(group GroupRef) (*Group, error) {
	return a.group(group)
}

func (a *ACL) AddUser(user *User) error {
	if user == nil || user.id == "" {
		return errdefs.NewErrTypeMismatch("ACL.AddUser", "user", 0)
	}

	if _, exists := a.users[user.id]; exists {
		return ErrUserAlreadyExists
	}

	a.users[user.id] = user
	return nil
}

// DeleteUser removes the user from the registry. Group membership is not
// touched; members are externally-owned references.
func (a *ACL) DeleteUser(user UserRef) error {
	id := user.userID()

	if _, exists := a.users[id]; !exists {
		return ErrUserNotFound
	}

	delete(a.users, id)
	return nil
}

func (a *ACL) UserExists(user UserRef) bool {
	_, exists := a.users[user.userID()]
	return exists
}

func (a *ACL) GetUser(user UserRef) (*User, error) {
	u, exists := a.users[user.userID()]
	if !exists {
		return nil, ErrUserNotFound
	}

	return u, nil
}

// DOT renders the hierarchy in Graphviz format. Diagnostic only; the
// rendering is delegated to the hierarchy collaborator.
func (a *ACL) DOT() string {
	return a.hierarchy.DOT("acl")
}

// CheckOption scopes a single IsAllowed call.
type CheckOption func(*checkConfig)

// OnService scopes the check to a resource: the verdict additionally
// requires the user to own the service privately or one of the user's
// groups to share it.
func OnService(service ServiceRef) CheckOption {
	return func(c *checkConfig) {
		c.service = service
	}
}

// WithAssertion installs a veto hook for the call.
func WithAssertion(assertion Assertion) CheckOption {
	return func(c *checkConfig) {
		c.assertion = assertion
	}
}

type checkConfig struct {
	service   ServiceRef
	assertion Assertion
}

// IsAllowed decides whether user may exercise permission. A false verdict
// is a normal outcome, never an error.
//
// The user's groups are found by scanning every hierarchy node; the
// hierarchy models membership per-group, so this is O(groups) by contract
// (an embedder needing a user-to-groups index maintains its own). The
// permission is satisfied if the group-local set of any member group, or of
// any ancestor of a member group, contains it; the walk toward the roots is
// breadth-first and stops at the first grant. A supplied assertion runs
// last and only on a provisional allow.
func (a *ACL) IsAllowed(user UserRef, permission PermissionRef, opts ...CheckOption) bool {
	config := &checkConfig{}
	for _, opt := range opts {
		opt(config)
	}

	userID := user.userID()
	permissionID := permission.permissionID()

	var serviceID ServiceID
	checkService := config.service != nil
	if checkService {
		serviceID = config.service.serviceID()
	}

	logger := a.logger.WithName("is-allowed").WithData(
		logx.Data{Key: "user.id", Value: userID},
		logx.Data{Key: "permission.id", Value: permissionID},
	)

	member, groups := a.membership(userID)
	if len(groups) == 0 {
		logger.Debug("no-group-membership")
		a.audit(decisionDenied, userID, permissionID, serviceID)
		return false
	}

	var shared bool
	if checkService {
		shared = serviceShared(groups, serviceID)
	}

	verdict := a.permissionGranted(groups, permissionID)

	if checkService {
		owned := member.ServiceExists(serviceID)
		if !owned && !shared {
			verdict = false
		}
	}

	if !verdict {
		a.audit(decisionDenied, userID, permissionID, serviceID)
		return false
	}

	if config.assertion != nil {
		verdict = config.assertion(userID, permissionID, serviceID)
	}

	name := decisionAllowed
	if !verdict {
		name = decisionDenied
	}
	a.audit(name, userID, permissionID, serviceID)

	return verdict
}

// membership collects every group the user is a member of, along with the
// User instance recorded by the first matching group.
func (a *ACL) membership(id UserID) (*User, []*Group) {
	var member *User
	var groups []*Group

	for _, node := range a.hierarchy.Nodes() {
		group, ok := node.(*Group)
		if !ok {
			continue
		}

		user, exists := group.member(id)
		if !exists {
			continue
		}

		if member == nil {
			member = user
		}
		groups = append(groups, group)
	}

	return member, groups
}

// permissionGranted searches each member group and its ancestors for the
// permission, returning at the first grant.
func (a *ACL) permissionGranted(groups []*Group, id PermissionID) bool {
	for _, group := range groups {
		ancestors, err := a.hierarchy.Ancestors(group.NodeID())
		if err != nil {
			continue
		}

		for _, node := range ancestors {
			ancestor, ok := node.(*Group)
			if !ok {
				continue
			}

			if ancestor.PermissionExists(id) {
				return true
			}
		}
	}

	return false
}

func serviceShared(groups []*Group, id ServiceID) bool {
	for _, group := range groups {
		if group.ServiceExists(id) {
			return true
		}
	}

	return false
}

func (a *ACL) group(ref GroupRef) (*Group, error) {
	node, err := a.hierarchy.GetNode(graph.NodeID(ref.groupID()))
	if err != nil {
		return nil, ErrGroupNotFound
	}

	group, ok := node.(*Group)
	if !ok {
		return nil, ErrGroupNotFound
	}

	return group, nil
}

func (a *ACL) audit(name string, userID UserID, permissionID PermissionID, serviceID ServiceID) {
	args := []logging.CustomExtension{
		{Key: "user", Value: string(userID)},
		{Key: "permission", Value: string(permissionID)},
	}
	if serviceID != "" {
		args = append(args, logging.CustomExtension{Key: "service", Value: string(serviceID)})
	}

	a.securityLogger.Log(decisionSignature, name, args...)
}
