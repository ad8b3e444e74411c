//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
)

// In-memory fakes for the repository ports.

type mockSessionRepo struct {
	mu     sync.Mutex
	data   map[string]model.SessionContext
	getErr error
	putErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{data: make(map[string]model.SessionContext)}
}

func (m *mockSessionRepo) Get(_ context.Context, username string) (model.SessionContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return model.SessionContext{}, m.getErr
	}
	sc, ok := m.data[username]
	if !ok {
		return model.SessionContext{}, domain.ErrNotFound
	}
	return sc, nil
}

func (m *mockSessionRepo) Put(_ context.Context, username string, sc model.SessionContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.data[username] = sc
	return nil
}

func (m *mockSessionRepo) Clear(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, username)
	return nil
}

type mockHistoryRepo struct {
	mu        sync.Mutex
	turns     []*model.ChatTurn
	appendErr error
}

func (m *mockHistoryRepo) Append(_ context.Context, turn *model.ChatTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.turns = append(m.turns, turn)
	return nil
}

func (m *mockHistoryRepo) Recent(_ context.Context, username string, limit int) ([]*model.ChatTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ChatTurn
	for _, t := range m.turns {
		if t.Username == username {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *mockHistoryRepo) TrimAll(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func (m *mockHistoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

type mockUserRepo struct {
	mu       sync.Mutex
	users    map[string]*model.User
	findErr  error
	touched  []string
	saveHook func(u *model.User) error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Save(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveHook != nil {
		if err := m.saveHook(u); err != nil {
			return err
		}
	}
	if _, exists := m.users[u.Username]; exists {
		return domain.ErrAlreadyExists
	}
	m.users[u.Username] = u
	return nil
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) TouchLastActive(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, username)
	return nil
}

func (m *mockUserRepo) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}
