package acl

// Service is an identity-only token representing a protected resource. A
// service is owned privately by a user or shared by a group; the token
// itself carries no ownership state.
type Service struct {
	id    ServiceID
	label string
}

func NewService(id ServiceID, label string) Service {
	return Service{
		id:    id,
		label: label,
	}
}

func (s Service) ID() ServiceID {
	return s.id
}

func (s Service) Label() string {
	return s.label
}

func (s Service) serviceID() ServiceID {
	return s.id
}
