package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/garden/internal/core/model"
	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

type persistedPlant struct {
	*model.BasePlant
	createdAt time.Time
	updatedAt time.Time
}

// CreatedAt implements [model.PersistedPlant].
func (p *persistedPlant) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt implements [model.PersistedPlant].
func (p *persistedPlant) UpdatedAt() time.Time {
	return p.updatedAt
}

var _ model.PersistedPlant = &persistedPlant{}

type persistedReminder struct {
	*model.BaseReminder
	createdAt time.Time
	updatedAt time.Time
}

// CreatedAt implements [model.PersistedReminder].
func (r *persistedReminder) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt implements [model.PersistedReminder].
func (r *persistedReminder) UpdatedAt() time.Time {
	return r.updatedAt
}

var _ model.PersistedReminder = &persistedReminder{}

type authToken struct {
	id      model.AuthTokenID
	ownerID model.UserID
	label   string
	value   string
}

// Store is an in-memory implementation of [port.Store]. Entries are
// kept in insertion order and every stored value is immutable: updates
// replace the entry instead of mutating it.
type Store struct {
	mu sync.RWMutex

	users     map[model.UserID]*model.BaseUser
	tokens    []*authToken
	plants    []*persistedPlant
	reminders []*persistedReminder

	now func() time.Time
}

// GetUserByID implements [port.UserStore].
func (s *Store) GetUserByID(ctx context.Context, userID model.UserID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return model.CopyUser(user), nil
}

// FindUserByEmail implements [port.UserStore].
func (s *Store) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email() == email {
			return model.CopyUser(u), nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// SaveUser implements [port.UserStore].
func (s *Store) SaveUser(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email() == user.Email() && u.ID() != user.ID() {
			return errors.Wrapf(port.ErrConflict, "email '%s' already in use", user.Email())
		}
	}

	s.users[user.ID()] = model.CopyUser(user)

	return nil
}

// FindAuthToken implements [port.UserStore].
func (s *Store) FindAuthToken(ctx context.Context, value string) (model.AuthToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tokens {
		if t.value != value {
			continue
		}

		owner, exists := s.users[t.ownerID]
		if !exists {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return &wrappedAuthToken{t, model.CopyUser(owner)}, nil
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// CreateAuthToken implements [port.UserStore].
func (s *Store) CreateAuthToken(ctx context.Context, token model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[token.Owner().ID()]; !exists {
		return errors.Wrapf(port.ErrNotFound, "owner '%s' does not exist", token.Owner().ID())
	}

	for _, t := range s.tokens {
		if t.value == token.Value() {
			return errors.WithStack(port.ErrConflict)
		}
	}

	s.tokens = append(s.tokens, &authToken{
		id:      token.ID(),
		ownerID: token.Owner().ID(),
		label:   token.Label(),
		value:   token.Value(),
	})

	return nil
}

// DeleteAuthToken implements [port.UserStore].
func (s *Store) DeleteAuthToken(ctx context.Context, tokenID model.AuthTokenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tokens)
	s.tokens = slices.DeleteFunc(s.tokens, func(t *authToken) bool {
		return t.id == tokenID
	})

	if len(s.tokens) == before {
		return errors.WithStack(port.ErrNotFound)
	}

	return nil
}

// CreatePlant implements [port.PlantStore].
func (s *Store) CreatePlant(ctx context.Context, plant model.Plant) (model.PersistedPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[plant.OwnerID()]; !exists {
		return nil, errors.Wrapf(port.ErrNotFound, "owner '%s' does not exist", plant.OwnerID())
	}

	if s.findPlant(plant.ID()) != -1 {
		return nil, errors.Wrapf(port.ErrConflict, "plant '%s' already exists", plant.ID())
	}

	now := s.now()

	entry := &persistedPlant{
		BasePlant: model.NewPlantWithID(plant.ID(), plant.OwnerID(), model.PlantAttributesOf(plant)),
		createdAt: now,
		updatedAt: now,
	}

	s.plants = append(s.plants, entry)

	return entry, nil
}

// GetPlantByID implements [port.PlantStore].
func (s *Store) GetPlantByID(ctx context.Context, id model.PlantID) (model.PersistedPlant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findPlant(id)
	if idx == -1 {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return s.plants[idx], nil
}

// QueryPlants implements [port.PlantStore].
func (s *Store) QueryPlants(ctx context.Context, opts port.QueryPlantsOptions) ([]model.PersistedPlant, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := make([]model.PersistedPlant, 0)
	for _, p := range s.plants {
		if opts.OwnerID != nil && p.OwnerID() != *opts.OwnerID {
			continue
		}

		matching = append(matching, p)
	}

	return paginate(matching, opts.Page), int64(len(matching)), nil
}

// UpdatePlant implements [port.PlantStore].
func (s *Store) UpdatePlant(ctx context.Context, id model.PlantID, updates port.PlantUpdates) (model.PersistedPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findPlant(id)
	if idx == -1 {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	current := s.plants[idx]

	attrs := current.Attributes()
	updates.Apply(&attrs)

	updated := &persistedPlant{
		BasePlant: model.NewPlantWithID(current.ID(), current.OwnerID(), attrs),
		createdAt: current.createdAt,
		updatedAt: s.now(),
	}

	s.plants[idx] = updated

	return updated, nil
}

// DeletePlant implements [port.PlantStore].
func (s *Store) DeletePlant(ctx context.Context, id model.PlantID, policy port.DeletePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findPlant(id)
	if idx == -1 {
		return errors.WithStack(port.ErrNotFound)
	}

	isDependent := func(r *persistedReminder) bool {
		return r.PlantID() == id
	}

	switch policy {
	case port.DeletePolicyRestrict:
		if slices.ContainsFunc(s.reminders, isDependent) {
			return errors.Wrapf(port.ErrConflict, "plant '%s' still has reminders", id)
		}
	case port.DeletePolicyCascade:
		s.reminders = slices.DeleteFunc(s.reminders, isDependent)
	case port.DeletePolicyOrphan:
	default:
		return errors.Errorf("unknown delete policy '%s'", policy)
	}

	s.plants = slices.Delete(s.plants, idx, idx+1)

	return nil
}

// CreateReminder implements [port.ReminderStore].
func (s *Store) CreateReminder(ctx context.Context, reminder model.Reminder) (model.PersistedReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPlant(reminder.PlantID()) == -1 {
		return nil, errors.Wrapf(port.ErrNotFound, "plant '%s' does not exist", reminder.PlantID())
	}

	if s.findReminder(reminder.ID()) != -1 {
		return nil, errors.Wrapf(port.ErrConflict, "reminder '%s' already exists", reminder.ID())
	}

	now := s.now()

	entry := &persistedReminder{
		BaseReminder: model.NewReminderWithID(reminder.ID(), reminder.PlantID(), reminder.Type(), reminder.RemindTime(), reminder.Notes()),
		createdAt:    now,
		updatedAt:    now,
	}

	s.reminders = append(s.reminders, entry)

	return entry, nil
}

// GetReminderByID implements [port.ReminderStore].
func (s *Store) GetReminderByID(ctx context.Context, id model.ReminderID) (model.PersistedReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findReminder(id)
	if idx == -1 {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return s.reminders[idx], nil
}

// QueryReminders implements [port.ReminderStore].
func (s *Store) QueryReminders(ctx context.Context, opts port.QueryRemindersOptions) ([]model.PersistedReminder, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := make([]model.PersistedReminder, 0)
	for _, r := range s.reminders {
		if opts.PlantID != nil && r.PlantID() != *opts.PlantID {
			continue
		}

		if opts.DueAt != nil && !model.IsDue(r, *opts.DueAt) {
			continue
		}

		if opts.PlantOwnerID != nil {
			idx := s.findPlant(r.PlantID())
			if idx == -1 || s.plants[idx].OwnerID() != *opts.PlantOwnerID {
				continue
			}
		}

		matching = append(matching, r)
	}

	return paginate(matching, opts.Page), int64(len(matching)), nil
}

// UpdateReminder implements [port.ReminderStore].
func (s *Store) UpdateReminder(ctx context.Context, id model.ReminderID, updates port.ReminderUpdates) (model.PersistedReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findReminder(id)
	if idx == -1 {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	current := s.reminders[idx]

	plantID := current.PlantID()
	if updates.PlantID != nil {
		if s.findPlant(*updates.PlantID) == -1 {
			return nil, errors.Wrapf(port.ErrNotFound, "plant '%s' does not exist", *updates.PlantID)
		}
		plantID = *updates.PlantID
	}

	kind := current.Type()
	if updates.Type != nil {
		kind = *updates.Type
	}

	remindTime := current.RemindTime()
	if updates.RemindTime != nil {
		remindTime = *updates.RemindTime
	}

	notes := current.Notes()
	if updates.Notes != nil {
		notes = *updates.Notes
	}

	updated := &persistedReminder{
		BaseReminder: model.NewReminderWithID(current.ID(), plantID, kind, remindTime, notes),
		createdAt:    current.createdAt,
		updatedAt:    s.now(),
	}

	s.reminders[idx] = updated

	return updated, nil
}

// DeleteReminder implements [port.ReminderStore].
func (s *Store) DeleteReminder(ctx context.Context, id model.ReminderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findReminder(id)
	if idx == -1 {
		return errors.WithStack(port.ErrNotFound)
	}

	s.reminders = slices.Delete(s.reminders, idx, idx+1)

	return nil
}

func (s *Store) findPlant(id model.PlantID) int {
	return slices.IndexFunc(s.plants, func(p *persistedPlant) bool {
		return p.ID() == id
	})
}

func (s *Store) findReminder(id model.ReminderID) int {
	return slices.IndexFunc(s.reminders, func(r *persistedReminder) bool {
		return r.ID() == id
	})
}

func paginate[T any](items []T, page port.Page) []T {
	skip := max(page.Skip, 0)
	if skip >= len(items) {
		return []T{}
	}

	items = items[skip:]

	if page.Limit != nil && *page.Limit >= 0 && *page.Limit < len(items) {
		items = items[:*page.Limit]
	}

	return items
}

type StoreOptionFunc func(s *Store)

// WithClock overrides the function used to timestamp entries.
func WithClock(now func() time.Time) StoreOptionFunc {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(funcs ...StoreOptionFunc) *Store {
	s := &Store{
		users:     map[model.UserID]*model.BaseUser{},
		tokens:    make([]*authToken, 0),
		plants:    make([]*persistedPlant, 0),
		reminders: make([]*persistedReminder, 0),
		now:       time.Now,
	}
	for _, fn := range funcs {
		fn(s)
	}
	return s
}

var _ port.Store = &Store{}

type wrappedAuthToken struct {
	t     *authToken
	owner model.User
}

// ID implements [model.AuthToken].
func (w *wrappedAuthToken) ID() model.AuthTokenID {
	return w.t.id
}

// Label implements [model.AuthToken].
func (w *wrappedAuthToken) Label() string {
	return w.t.label
}

// Owner implements [model.AuthToken].
func (w *wrappedAuthToken) Owner() model.User {
	return w.owner
}

// Value implements [model.AuthToken].
func (w *wrappedAuthToken) Value() string {
	return w.t.value
}

var _ model.AuthToken = &wrappedAuthToken{}
