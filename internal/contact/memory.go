package contact

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps contacts in process memory. Data is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []Contact // ordered by id
	nextID int64
}

// NewMemoryStore creates an empty store, optionally seeded with rows.
// Seeded rows keep their ids; new ids continue after the largest one.
func NewMemoryStore(seed ...Contact) *MemoryStore {
	s := &MemoryStore{nextID: 1}
	for _, c := range seed {
		s.rows = append(s.rows, c)
		s.nextID = max(s.nextID, c.ID+1)
	}
	slices.SortFunc(s.rows, func(a, b Contact) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return s
}

func (s *MemoryStore) Add(ctx context.Context, email, name string) (Contact, error) {
	if err := ctx.Err(); err != nil {
		return Contact{}, storeError("add", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := Contact{ID: s.nextID, Email: email, Name: name}
	s.nextID++
	s.rows = append(s.rows, c)
	return c, nil
}

func (s *MemoryStore) Edit(ctx context.Context, oldEmail, newEmail, name string) error {
	if err := ctx.Err(); err != nil {
		return storeError("edit", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].Email == oldEmail {
			s.rows[i].Email = newEmail
			s.rows[i].Name = name
		}
	}
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return storeError("remove", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = slices.DeleteFunc(s.rows, func(c Contact) bool {
		return c.Email == email
	})
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError("list", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Contact, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (Contact, error) {
	if err := ctx.Err(); err != nil {
		return Contact{}, storeError("get", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, found := slices.BinarySearchFunc(s.rows, id, func(c Contact, id int64) int {
		return cmp.Compare(c.ID, id)
	})
	if !found {
		return Contact{}, ErrNotFound
	}
	return s.rows[i], nil
}
