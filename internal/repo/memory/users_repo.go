package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
)

type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
	order  []int64 // insertion order, for stable listings
	now    func() time.Time
}

type Option func(*UsersRepo)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *UsersRepo) {
		r.now = now
	}
}

func NewUsersRepo(opts ...Option) *UsersRepo {
	r := &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Save persists u, assigning an id when it has none. The assigned id and the
// timestamps are written back into u.
func (r *UsersRepo) Save(u *user.User) user.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if u.IsNew() {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}

	prev, exists := r.items[u.ID]
	if exists {
		u.CreatedAt = prev.CreatedAt

		// keep updatedAt strictly increasing even if the clock did not move
		if !now.After(prev.UpdatedAt) {
			now = prev.UpdatedAt.Add(time.Nanosecond)
		}
	} else {
		u.CreatedAt = now
		r.order = append(r.order, u.ID)
	}

	u.UpdatedAt = now
	r.items[u.ID] = *u

	return *u
}

func (r *UsersRepo) FindByID(id int64) (user.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	return u, ok
}

func (r *UsersRepo) FindAll() []user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out
}

func (r *UsersRepo) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false
	}

	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v int64) bool { return v == id })

	return true
}

func (r *UsersRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
