package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/federated"
)

// memUsers is an in-memory UserRepository keyed by ID.
type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
}

func newMemUsers(seed ...*domain.User) *memUsers {
	m := &memUsers{byID: map[string]*domain.User{}}
	for _, u := range seed {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailInUse
		}
	}
	m.nextID++
	created := *u
	created.ID = fmt.Sprintf("user-%d", m.nextID)
	m.byID[created.ID] = &created
	return &created, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByEmail(_ context.Context, addr string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == addr {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) UpdateProfile(_ context.Context, id, name, addr string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, other := range m.byID {
		if other.ID != id && other.Email == addr {
			return nil, domain.ErrEmailInUse
		}
	}
	u.Name, u.Email = name, addr
	return u, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) ListWithCounts(_ context.Context) ([]*domain.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.UserSummary, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

// memOTPs is an in-memory OTPRepository.
type memOTPs struct {
	mu   sync.Mutex
	recs map[string]domain.OneTimePasscode
}

func newMemOTPs() *memOTPs {
	return &memOTPs{recs: map[string]domain.OneTimePasscode{}}
}

func (m *memOTPs) Upsert(_ context.Context, addr, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[addr] = domain.OneTimePasscode{Email: addr, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (m *memOTPs) FindByEmail(_ context.Context, addr string) (*domain.OneTimePasscode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[addr]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	return &rec, nil
}

func (m *memOTPs) Delete(_ context.Context, addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, addr)
	return nil
}

func (m *memOTPs) code(addr string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recs[addr].Code
}

type fakeSender struct {
	sent []email.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg email.Message) (email.Receipt, error) {
	if s.err != nil {
		return email.Receipt{}, s.err
	}
	s.sent = append(s.sent, msg)
	return email.Receipt{MessageID: fmt.Sprintf("msg-%d", len(s.sent))}, nil
}

type fakeVerifier struct {
	verify func(ctx context.Context, credential string) (*federated.Identity, error)
}

func (f *fakeVerifier) Verify(ctx context.Context, credential string) (*federated.Identity, error) {
	return f.verify(ctx, credential)
}

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
