package acl

import (
	"sort"

	"code.cloudfoundry.org/acl/errdefs"
)

// User is an identity plus the set of services it privately owns. No
// permission state lives here; authorization is always resolved through
// group membership.
type User struct {
	id       UserID
	label    string
	services map[ServiceID]Service
}

func NewUser(id UserID, label string) *User {
	return &User{
		id:       id,
		label:    label,
		services: make(map[ServiceID]Service),
	}
}

func (u *User) ID() UserID {
	return u.id
}

func (u *User) Label() string {
	return u.label
}

func (u *User) userID() UserID {
	return u.id
}

// AddServices records private ownership of each service. Adding a service
// that is already owned is a no-op. An element with an empty identity fails
// at its position; elements before it stay applied.
func (u *User) AddServices(services ...Service) error {
	for i, service := range services {
		if service.id == "" {
			return errdefs.NewErrTypeMismatch("User.AddServices", "service", i)
		}

		u.services[service.id] = service
	}

	return nil
}

// DeleteServices releases ownership. Deleting an absent service is a no-op.
func (u *User) DeleteServices(services ...ServiceRef) {
	for _, service := range services {
		delete(u.services, service.serviceID())
	}
}

func (u *User) ServiceExists(service ServiceRef) bool {
	_, exists := u.services[service.serviceID()]
	return exists
}

func (u *User) GetService(service ServiceRef) (Service, error) {
	s, exists := u.services[service.serviceID()]
	if !exists {
		return Service{}, ErrServiceNotFound
	}

	return s, nil
}

// Services returns a snapshot of the owned services, sorted by id.
// Mutating the snapshot does not affect the user.
func (u *User) Services() []Service {
	services := make([]Service, 0, len(u.services))
	for _, service := range u.services {
		services = append(services, service)
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].id < services[j].id
	})

	return services
}
