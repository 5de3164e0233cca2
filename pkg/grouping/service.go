package grouping

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewService(groupingRepository groupingRepository, groupService groupService) *Service {
	return &Service{
		repository:   groupingRepository,
		groupService: groupService,
	}
}

type groupingRepository interface {
	findNextUngroupedSeed(ctx context.Context) (*model.Guest, error)
	findUngroupedPlusOne(ctx context.Context, mainID uint) (*model.Guest, error)
	findUngroupedBySourceAndLastName(ctx context.Context, source, lastName string) ([]model.Guest, error)
	findByIDs(ctx context.Context, ids []uint) ([]model.Guest, error)
	assignGroup(ctx context.Context, groupID uint, guestIDs []uint) (int64, error)
	countGuests(ctx context.Context) (total int64, grouped int64, err error)
	searchUngrouped(ctx context.Context, query string, limit int) ([]model.Guest, error)
}

type groupService interface {
	Create(ctx context.Context, name, password string, misc *string) (*model.Group, error)
}

type Service struct {
	repository   groupingRepository
	groupService groupService
}

// Suggestion is one proposed household: the seed guest, the full ordered
// member list, and a generated name and password the operator can accept or
// edit.
type Suggestion struct {
	Seed              *model.Guest  `json:"seed"`
	Members           []model.Guest `json:"members"`
	SuggestedName     string        `json:"suggestedName"`
	SuggestedPassword string        `json:"suggestedPassword"`
	TotalMembers      int           `json:"totalMembers"`
	MainGuests        int           `json:"mainGuests"`
	PlusOnes          int           `json:"plusOnes"`
}

// NextSuggestion proposes the next household to group, or nil when every
// guest is grouped. It is a pure read; nothing is persisted until the
// operator confirms.
//
// Two operators running the wizard concurrently may be shown the same seed;
// whoever confirms last wins the guests and the other group ends up smaller
// or empty. Acceptable for a single-operator admin tool.
func (s Service) NextSuggestion(ctx context.Context) (*Suggestion, error) {
	seed, err := s.repository.findNextUngroupedSeed(ctx)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	collector := newMemberCollector(seed)

	seedPlusOne, err := s.addPlusOne(ctx, collector, seed.ID)
	if err != nil {
		return nil, err
	}

	err = s.addFamily(ctx, collector, seed.Source, seed.LastName)
	if err != nil {
		return nil, err
	}

	// a +1 with a different last name pulls in their own family from the
	// same source list
	if seedPlusOne != nil && seedPlusOne.LastName != seed.LastName {
		err = s.addFamily(ctx, collector, seed.Source, seedPlusOne.LastName)
		if err != nil {
			return nil, err
		}
	}

	members := collector.ordered()
	mains := 0
	for _, member := range members {
		if !member.IsPlusOne() {
			mains++
		}
	}

	return &Suggestion{
		Seed:              seed,
		Members:           members,
		SuggestedName:     suggestName(seed, len(members)),
		SuggestedPassword: suggestPassword(seed.LastName),
		TotalMembers:      len(members),
		MainGuests:        mains,
		PlusOnes:          len(members) - mains,
	}, nil
}

func (s Service) addPlusOne(ctx context.Context, collector *memberCollector, mainID uint) (*model.Guest, error) {
	plusOne, err := s.repository.findUngroupedPlusOne(ctx, mainID)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	collector.add(*plusOne)
	return plusOne, nil
}

// addFamily collects every ungrouped guest sharing source and last name,
// together with each of their ungrouped +1s.
func (s Service) addFamily(ctx context.Context, collector *memberCollector, source, lastName string) error {
	relatives, err := s.repository.findUngroupedBySourceAndLastName(ctx, source, lastName)
	if err != nil {
		return err
	}

	for _, relative := range relatives {
		if !collector.add(relative) {
			continue
		}
		_, err := s.addPlusOne(ctx, collector, relative.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

// memberCollector accumulates candidate members, deduplicated by guest id.
type memberCollector struct {
	seed    model.Guest
	seen    map[uint]struct{}
	members []model.Guest
}

func newMemberCollector(seed *model.Guest) *memberCollector {
	return &memberCollector{
		seed:    *seed,
		seen:    map[uint]struct{}{seed.ID: {}},
		members: nil,
	}
}

// add records the guest unless already present. It reports whether the guest
// was newly added.
func (m *memberCollector) add(guest model.Guest) bool {
	if _, ok := m.seen[guest.ID]; ok {
		return false
	}
	m.seen[guest.ID] = struct{}{}
	m.members = append(m.members, guest)
	return true
}

// ordered returns the seed first, then main guests, then +1s, ties broken by
// last name ascending.
func (m *memberCollector) ordered() []model.Guest {
	rest := make([]model.Guest, len(m.members))
	copy(rest, m.members)
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].IsPlusOne() != rest[j].IsPlusOne() {
			return !rest[i].IsPlusOne()
		}
		return rest[i].LastName < rest[j].LastName
	})

	return append([]model.Guest{m.seed}, rest...)
}

func suggestName(seed *model.Guest, memberCount int) string {
	if memberCount == 1 {
		return seed.FullName()
	}
	return capitalize(seed.LastName) + " Family"
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// suggestPassword derives a memorable shared secret. Collisions are possible
// and not checked; this is not a security measure.
func suggestPassword(lastName string) string {
	return fmt.Sprintf("%s%03d", strings.ToLower(lastName), rand.IntN(1000))
}

// CreatedGroup is the wizard's view of a freshly persisted group.
type CreatedGroup struct {
	Group       *model.Group `json:"group"`
	MemberCount int64        `json:"memberCount"`
}

// WizardResult pairs the created group with the recomputed next suggestion,
// so the wizard loop continues without an extra round trip.
type WizardResult struct {
	Created        *CreatedGroup `json:"created"`
	NextSuggestion *Suggestion   `json:"nextSuggestion"`
}

// CreateFromSuggestion persists a confirmed suggestion. Unknown guest ids are
// silently skipped by the batch update.
func (s Service) CreateFromSuggestion(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*WizardResult, error) {
	if name == "" || password == "" {
		return nil, errdef.NewBadRequest("name and password are required")
	}
	if len(guestIDs) == 0 {
		return nil, errdef.NewBadRequest("at least one guest is required")
	}

	group, err := s.groupService.Create(ctx, name, password, misc)
	if err != nil {
		return nil, err
	}

	assigned, err := s.repository.assignGroup(ctx, group.ID, guestIDs)
	if err != nil {
		return nil, err
	}

	next, err := s.NextSuggestion(ctx)
	if err != nil {
		return nil, err
	}

	return &WizardResult{
		Created:        &CreatedGroup{Group: group, MemberCount: assigned},
		NextSuggestion: next,
	}, nil
}

// EnsurePlusOnesIncluded expands a manual selection so a +1 is never split
// from their main guest: main guests pull in their ungrouped +1, +1s pull in
// their main guest. Newly added ids are appended after the selection.
func (s Service) EnsurePlusOnesIncluded(ctx context.Context, guestIDs []uint) ([]uint, error) {
	guests, err := s.repository.findByIDs(ctx, guestIDs)
	if err != nil {
		return nil, err
	}
	guestsByID := make(map[uint]model.Guest, len(guests))
	for _, guest := range guests {
		guestsByID[guest.ID] = guest
	}

	included := make(map[uint]struct{}, len(guestIDs))
	result := make([]uint, 0, len(guestIDs))
	add := func(id uint) {
		if _, ok := included[id]; ok {
			return
		}
		included[id] = struct{}{}
		result = append(result, id)
	}

	for _, id := range guestIDs {
		add(id)
	}

	for _, id := range guestIDs {
		guest, ok := guestsByID[id]
		if !ok {
			continue
		}

		if guest.IsPlusOne() {
			add(*guest.PlusOneOf)
			continue
		}

		plusOne, err := s.repository.findUngroupedPlusOne(ctx, guest.ID)
		if err != nil {
			if errdef.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		add(plusOne.ID)
	}

	return result, nil
}

// CreateGroup is the manual grouping path: every selected guest must exist
// and be ungrouped, and the selection is expanded with EnsurePlusOnesIncluded
// before anything is written.
func (s Service) CreateGroup(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*CreatedGroup, error) {
	if len(guestIDs) == 0 {
		return nil, errdef.NewBadRequest("at least one guest is required")
	}

	err := s.validateUngrouped(ctx, guestIDs)
	if err != nil {
		return nil, err
	}

	expanded, err := s.EnsurePlusOnesIncluded(ctx, guestIDs)
	if err != nil {
		return nil, err
	}

	// the expansion may pull in a main guest that is already grouped
	err = s.validateUngrouped(ctx, expanded)
	if err != nil {
		return nil, err
	}

	group, err := s.groupService.Create(ctx, name, password, misc)
	if err != nil {
		return nil, err
	}

	assigned, err := s.repository.assignGroup(ctx, group.ID, expanded)
	if err != nil {
		return nil, err
	}

	return &CreatedGroup{Group: group, MemberCount: assigned}, nil
}

func (s Service) validateUngrouped(ctx context.Context, guestIDs []uint) error {
	guests, err := s.repository.findByIDs(ctx, guestIDs)
	if err != nil {
		return err
	}

	guestsByID := make(map[uint]model.Guest, len(guests))
	for _, guest := range guests {
		guestsByID[guest.ID] = guest
	}

	for _, id := range guestIDs {
		guest, ok := guestsByID[id]
		if !ok {
			return errdef.NewBadRequest("guest %d doesn't exist", id)
		}
		if guest.IsGrouped() {
			return errdef.NewBadRequest("guest %q already belongs to a group", guest.FullName())
		}
	}

	return nil
}

// Progress reports how far the grouping effort has come.
type Progress struct {
	TotalGuests        int64 `json:"totalGuests"`
	GroupedGuests      int64 `json:"groupedGuests"`
	RemainingGuests    int64 `json:"remainingGuests"`
	ProgressPercentage int   `json:"progressPercentage"`
	IsComplete         bool  `json:"isComplete"`
}

func (s Service) Progress(ctx context.Context) (*Progress, error) {
	total, grouped, err := s.repository.countGuests(ctx)
	if err != nil {
		return nil, err
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(grouped) / float64(total) * 100))
	}

	return &Progress{
		TotalGuests:        total,
		GroupedGuests:      grouped,
		RemainingGuests:    total - grouped,
		ProgressPercentage: percentage,
		IsComplete:         total-grouped == 0,
	}, nil
}

const defaultSearchLimit = 20

// SearchUngrouped finds ungrouped guests by a case-insensitive substring
// match across first name, last name and source.
func (s Service) SearchUngrouped(ctx context.Context, query string, limit int) ([]model.Guest, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, errdef.NewBadRequest("search query must be at least 2 characters")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	return s.repository.searchUngrouped(ctx, query, limit)
}
