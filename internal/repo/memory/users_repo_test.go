package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newStepClock() *stepClock {
	return &stepClock{cur: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func TestUsersRepo_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewUsersRepo()

	a := user.New("Alice", "alice@x.com", 30)
	b := user.New("Bob", "bob@x.com", 40)

	savedA := repo.Save(&a)
	savedB := repo.Save(&b)

	assert.Equal(t, int64(1), savedA.ID)
	assert.Equal(t, int64(2), savedB.ID)
	assert.Equal(t, savedA.ID, a.ID, "id is written back into the argument")
	assert.Equal(t, savedA.CreatedAt, savedA.UpdatedAt)
	assert.False(t, savedA.CreatedAt.IsZero())
}

func TestUsersRepo_SaveExistingRefreshesUpdatedAt(t *testing.T) {
	clock := newStepClock()
	repo := NewUsersRepo(WithClock(clock.Now))

	u := user.New("Alice", "alice@x.com", 30)
	first := repo.Save(&u)

	u.Age = 31
	u.CreatedAt = time.Time{}
	second := repo.Save(&u)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "createdAt never changes")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	stored, ok := repo.FindByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, 31, stored.Age)
	assert.Equal(t, 1, repo.Count())
}

func TestUsersRepo_UpdatedAtStrictlyIncreasesOnFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewUsersRepo(WithClock(func() time.Time { return frozen }))

	u := user.New("Alice", "alice@x.com", 30)
	first := repo.Save(&u)
	second := repo.Save(&u)

	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.False(t, second.UpdatedAt.Before(second.CreatedAt))
}

func TestUsersRepo_IDsAreNotReused(t *testing.T) {
	repo := NewUsersRepo()

	a := user.New("Alice", "alice@x.com", 30)
	repo.Save(&a)
	require.True(t, repo.Delete(a.ID))

	b := user.New("Bob", "bob@x.com", 40)
	repo.Save(&b)

	assert.Equal(t, int64(2), b.ID)
}

func TestUsersRepo_ExplicitIDAdvancesCounter(t *testing.T) {
	repo := NewUsersRepo()

	pinned := user.User{ID: 10, Name: "Pinned", Email: "p@x.com", Age: 5}
	repo.Save(&pinned)

	next := user.New("Next", "n@x.com", 6)
	repo.Save(&next)

	assert.Equal(t, int64(11), next.ID)
}

func TestUsersRepo_FindByIDMissing(t *testing.T) {
	repo := NewUsersRepo()

	_, ok := repo.FindByID(99)
	assert.False(t, ok)
}

func TestUsersRepo_FindAllIsInsertionOrderedSnapshot(t *testing.T) {
	repo := NewUsersRepo()

	for _, name := range []string{"a", "b", "c"} {
		u := user.New(name, name+"@x.com", 20)
		repo.Save(&u)
	}

	require.True(t, repo.Delete(2))

	snapshot := repo.FindAll()

	d := user.New("d", "d@x.com", 20)
	repo.Save(&d)

	names := make([]string, 0, len(snapshot))
	for _, u := range snapshot {
		names = append(names, u.Name)
	}

	assert.Equal(t, []string{"a", "c"}, names)
	assert.Len(t, repo.FindAll(), 3)
}

func TestUsersRepo_Delete(t *testing.T) {
	repo := NewUsersRepo()

	u := user.New("Alice", "alice@x.com", 30)
	repo.Save(&u)

	assert.True(t, repo.Delete(u.ID))
	assert.False(t, repo.Delete(u.ID))

	_, ok := repo.FindByID(u.ID)
	assert.False(t, ok)
	assert.Empty(t, repo.FindAll())
}

func TestUsersRepo_ConcurrentSavesGetUniqueIDs(t *testing.T) {
	repo := NewUsersRepo()

	const n = 200
	ids := make([]int64, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			u := user.New("user", "u@x.com", 20)
			ids[i] = repo.Save(&u).ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int64]struct{}, n)
	for _, id := range ids {
		assert.NotZero(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}

	assert.Equal(t, n, repo.Count())
	assert.Len(t, repo.FindAll(), n)
}
