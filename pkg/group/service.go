package group

import (
	"context"
	"crypto/subtle"
	"sort"
	"strings"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewService(groupRepository groupRepository, publisher activityPublisher) *Service {
	return &Service{
		repository: groupRepository,
		publisher:  publisher,
	}
}

type activityPublisher interface {
	Publish(event activity.Event)
}

type groupRepository interface {
	create(ctx context.Context, group *model.Group) error
	save(ctx context.Context, group *model.Group) error
	findByID(ctx context.Context, id uint) (*model.Group, error)
	findWithGuests(ctx context.Context, id uint) (*model.Group, error)
	findByName(ctx context.Context, name string) (*model.Group, error)
	findAll(ctx context.Context) ([]model.Group, error)
	delete(ctx context.Context, id uint) error
	updateGuestContact(ctx context.Context, guestID uint, phone, email, address *string) error
}

type Service struct {
	repository groupRepository
	publisher  activityPublisher
}

func (s Service) Create(ctx context.Context, name, password string, misc *string) (*model.Group, error) {
	if password == "" {
		password = generatePassword(name)
	}

	group := &model.Group{
		Name:     name,
		Password: password,
		Misc:     misc,
	}

	err := s.repository.create(ctx, group)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(activity.Event{Type: activity.TypeGroupCreated, Message: group.Name})
	return group, nil
}

// generatePassword derives the default shared secret from the group name:
// lowercased with every non-[a-z] rune stripped.
func generatePassword(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s Service) Update(ctx context.Context, id uint, name, password string, misc *string) (*model.Group, error) {
	group, err := s.repository.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Name = name
	group.Password = password
	group.Misc = misc

	err = s.repository.save(ctx, group)
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.Group, error) {
	return s.repository.findByID(ctx, id)
}

func (s Service) FindWithGuests(ctx context.Context, id uint) (*model.Group, error) {
	return s.repository.findWithGuests(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]model.Group, error) {
	return s.repository.findAll(ctx)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

// SignIn authenticates the guest site's shared group credential.
func (s Service) SignIn(ctx context.Context, name, password string) (*model.Group, error) {
	unauthorizedError := "invalid group name and password combination"

	group, err := s.repository.findByName(ctx, name)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(group.Password), []byte(password)) != 1 {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	return group, nil
}

// ContactInfo is the group's outward contact information. It lives on the
// principal guest, not on the group row.
type ContactInfo struct {
	PrincipalGuestID   uint    `json:"principalGuestId"`
	PrincipalGuestName string  `json:"principalGuestName"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	Address            *string `json:"address"`
}

func (s Service) Contact(ctx context.Context, id uint) (*ContactInfo, error) {
	principal, err := s.principalGuest(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ContactInfo{
		PrincipalGuestID:   principal.ID,
		PrincipalGuestName: principal.FullName(),
		Phone:              principal.Phone,
		Email:              principal.Email,
		Address:            principal.Address,
	}, nil
}

// UpdateContact writes the group's contact info onto its principal guest.
func (s Service) UpdateContact(ctx context.Context, id uint, phone, email, address *string) (*ContactInfo, error) {
	principal, err := s.principalGuest(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repository.updateGuestContact(ctx, principal.ID, phone, email, address)
	if err != nil {
		return nil, err
	}

	return &ContactInfo{
		PrincipalGuestID:   principal.ID,
		PrincipalGuestName: principal.FullName(),
		Phone:              phone,
		Email:              email,
		Address:            address,
	}, nil
}

func (s Service) principalGuest(ctx context.Context, id uint) (*model.Guest, error) {
	group, err := s.repository.findWithGuests(ctx, id)
	if err != nil {
		return nil, err
	}

	principal := electPrincipal(group.Guests)
	if principal == nil {
		return nil, errdef.NewNotFound("group %q has no members to hold contact info", group.Name)
	}
	return principal, nil
}

// electPrincipal picks the member whose contact fields represent the group:
// first anyone already holding a phone or email, then the first member who
// isn't a +1, then the first member alphabetically. An explicit ordered
// predicate list, evaluated top to bottom.
func electPrincipal(guests []model.Guest) *model.Guest {
	if len(guests) == 0 {
		return nil
	}

	predicates := []func(model.Guest) bool{
		func(g model.Guest) bool { return g.HasContactDetails() },
		func(g model.Guest) bool { return !g.IsPlusOne() },
	}

	for _, matches := range predicates {
		for i := range guests {
			if matches(guests[i]) {
				return &guests[i]
			}
		}
	}

	alphabetical := make([]model.Guest, len(guests))
	copy(alphabetical, guests)
	sort.SliceStable(alphabetical, func(i, j int) bool {
		if alphabetical[i].LastName != alphabetical[j].LastName {
			return alphabetical[i].LastName < alphabetical[j].LastName
		}
		return alphabetical[i].FirstName < alphabetical[j].FirstName
	})
	return &alphabetical[0]
}
