package monitor

import (
	"context"
	"time"

	"code.cloudfoundry.org/acl"
	"code.cloudfoundry.org/acl/logx"
	"code.cloudfoundry.org/clock"
)

const (
	ProbeParentGroupID = "system.probe.admins"
	ProbeGroupID       = "system.probe.members"
	ProbeUserID        = "system.probe.user"
	ProbeServiceID     = "system.probe.service"

	ProbeAssignedPermissionID   = "system.probe.assigned-permission"
	ProbeUnassignedPermissionID = "system.probe.unassigned-permission"
)

//go:generate counterfeiter . Client

// Client is the slice of the decision engine the probe exercises. It is
// satisfied by *acl.ACL.
type Client interface {
	AddGroup(group *acl.Group, parents ...acl.GroupRef) error
	DeleteGroup(group acl.GroupRef, cascade bool) error
	Allow(group acl.GroupRef, permissions ...acl.Permission) error
	AddUser(user *acl.User) error
	DeleteUser(user acl.UserRef) error
	IsAllowed(user acl.UserRef, permission acl.PermissionRef, opts ...acl.CheckOption) bool
}

// Probe builds a throwaway two-level hierarchy, times decision checks
// against it, and verifies both verdicts come back as expected. Fixture ids
// carry a unique suffix so overlapping probe cycles cannot collide.
type Probe struct {
	client Client

	maxLatency time.Duration
	clock      clock.Clock
}

func NewProbe(client Client, opts ...Option) *Probe {
	config := defaultOptions()

	for _, opt := range opts {
		opt(config)
	}

	return &Probe{
		client:     client,
		maxLatency: config.maxLatency,
		clock:      config.clock,
	}
}

// Setup creates the fixture: a parent group granted the assigned
// permission, a child group holding the probe user, and a probe service
// shared by the child group.
func (p *Probe) Setup(ctx context.Context, logger logx.Logger, uniqueSuffix string) error {
	logger.Debug(starting)
	defer logger.Debug(finished)

	if err := ctx.Err(); err != nil {
		return err
	}

	parent := acl.NewGroup(probeGroupID(ProbeParentGroupID, uniqueSuffix), "probe parent group")
	if err := p.client.AddGroup(parent); err != nil {
		logger.Error(failedToAddGroup, err, logx.Data{Key: "group.id", Value: parent.ID()})
		return err
	}

	permission := acl.NewPermission(probePermissionID(ProbeAssignedPermissionID, uniqueSuffix), "")
	if err := p.client.Allow(parent, permission); err != nil {
		logger.Error(failedToAllowPermission, err, logx.Data{Key: "permission.id", Value: permission.ID()})
		return err
	}

	member := acl.NewGroup(probeGroupID(ProbeGroupID, uniqueSuffix), "probe member group")
	if err := p.client.AddGroup(member, parent.ID()); err != nil {
		logger.Error(failedToAddGroup, err, logx.Data{Key: "group.id", Value: member.ID()})
		return err
	}

	service := acl.NewService(probeServiceID(uniqueSuffix), "probe service")
	if err := member.AddServices(service); err != nil {
		return err
	}

	user := acl.NewUser(probeUserID(uniqueSuffix), "probe user")
	if err := p.client.AddUser(user); err != nil && err != acl.ErrUserAlreadyExists {
		logger.Error(failedToAddUser, err, logx.Data{Key: "user.id", Value: user.ID()})
		return err
	}

	return member.AddUsers(user)
}

// Run issues one check expected to allow and one expected to deny,
// returning whether both verdicts were correct along with the observed
// durations. A query slower than the configured max latency also counts as
// incorrect.
func (p *Probe) Run(ctx context.Context, logger logx.Logger, uniqueSuffix string) (bool, []time.Duration, error) {
	logger.Debug(starting)
	defer logger.Debug(finished)

	var durations []time.Duration

	allowed, duration, err := p.check(ctx, ProbeAssignedPermissionID, uniqueSuffix)
	if err != nil {
		return false, durations, err
	}
	durations = append(durations, duration)

	if !allowed {
		logger.Info(incorrectResponse, logx.Data{Key: "expected", Value: true}, logx.Data{Key: "got", Value: false})
		return false, durations, nil
	}

	denied, duration, err := p.check(ctx, ProbeUnassignedPermissionID, uniqueSuffix)
	if err != nil {
		return false, durations, err
	}
	durations = append(durations, duration)

	if denied {
		logger.Info(incorrectResponse, logx.Data{Key: "expected", Value: false}, logx.Data{Key: "got", Value: true})
		return false, durations, nil
	}

	for _, d := range durations {
		if d > p.maxLatency {
			logger.Info(exceededMaxLatency, logx.Data{Key: "duration", Value: d}, logx.Data{Key: "maxLatency", Value: p.maxLatency})
			return false, durations, nil
		}
	}

	return true, durations, nil
}

// Cleanup cascade-deletes the fixture hierarchy and the probe user.
// Already-removed fixtures are tolerated so a failed Setup can still be
// cleaned up.
func (p *Probe) Cleanup(ctx context.Context, logger logx.Logger, uniqueSuffix string) error {
	logger.Debug(starting)
	defer logger.Debug(finished)

	if err := ctx.Err(); err != nil {
		return err
	}

	parentID := probeGroupID(ProbeParentGroupID, uniqueSuffix)
	if err := p.client.DeleteGroup(parentID, true); err != nil && err != acl.ErrGroupNotFound {
		logger.Error(failedToDeleteGroup, err, logx.Data{Key: "group.id", Value: parentID})
		return err
	}

	userID := probeUserID(uniqueSuffix)
	if err := p.client.DeleteUser(userID); err != nil && err != acl.ErrUserNotFound {
		logger.Error(failedToDeleteUser, err, logx.Data{Key: "user.id", Value: userID})
		return err
	}

	return nil
}

func (p *Probe) check(ctx context.Context, permission, uniqueSuffix string) (bool, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}

	start := p.clock.Now()
	verdict := p.client.IsAllowed(
		probeUserID(uniqueSuffix),
		probePermissionID(permission, uniqueSuffix),
		acl.OnService(probeServiceID(uniqueSuffix)),
	)
	duration := p.clock.Since(start)

	return verdict, duration, nil
}

func probeGroupID(base, uniqueSuffix string) acl.GroupID {
	return acl.GroupID(base + "." + uniqueSuffix)
}

func probePermissionID(base, uniqueSuffix string) acl.PermissionID {
	return acl.PermissionID(base + "." + uniqueSuffix)
}

func probeUserID(uniqueSuffix string) acl.UserID {
	return acl.UserID(ProbeUserID + "." + uniqueSuffix)
}

func probeServiceID(uniqueSuffix string) acl.ServiceID {
	return acl.ServiceID(ProbeServiceID + "." + uniqueSuffix)
}
