package crudsvc_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/apperr"
	"github.com/forja-labs/pkg/crudsvc"
	"github.com/forja-labs/pkg/pagination"
	"github.com/forja-labs/pkg/repogen"
	"github.com/forja-labs/pkg/sorter"
	"github.com/forja-labs/pkg/workpool"
)

type user struct {
	ID   int64
	Name string
}

type userFilter struct {
	ID         int64
	NamePrefix string

	// paging fields populated by the list decorator
	Limit   int
	Offset  int
	OrderBy string
}

const (
	notFoundCode    = "OBJECT_NOT_FOUND"
	wrongRowsCode   = "INCORRECT_ROWS_AFFECTION"
	multipleCode    = "MULTIPLE_ROWS_FOUND"
	defaultSequence = "users_id_seq"
)

// memUserRepo is an in-memory stand-in for the PostgreSQL repository.
type memUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users []user
}

var _ repogen.CommandRepo[user, userFilter] = (*memUserRepo)(nil)

func (r *memUserRepo) match(f userFilter) []user {
	matched := make([]user, 0)
	for _, u := range r.users {
		if f.ID != 0 && u.ID != f.ID {
			continue
		}
		if f.NamePrefix != "" && !strings.HasPrefix(u.Name, f.NamePrefix) {
			continue
		}
		matched = append(matched, u)
	}

	if f.OrderBy == "name asc" {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}

	return matched
}

func (r *memUserRepo) page(matched []user, f userFilter) []user {
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched
}

func (r *memUserRepo) Get(_ context.Context, f userFilter) (*user, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.match(f)
	if len(matched) == 0 {
		return nil, errx.New("no user found", errx.WithCode(notFoundCode))
	}
	if len(matched) > 1 {
		return nil, errx.New("multiple user found", errx.WithCode(multipleCode))
	}
	return &matched[0], nil
}

func (r *memUserRepo) List(_ context.Context, f userFilter) ([]user, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page(r.match(f), f), nil
}

func (r *memUserRepo) ListWithCount(_ context.Context, f userFilter) ([]user, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.match(f)
	return r.page(matched, f), len(matched), nil
}

func (r *memUserRepo) Count(_ context.Context, f userFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.match(f)), nil
}

func (r *memUserRepo) FirstOrNil(_ context.Context, f userFilter) (*user, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.match(f)
	if len(matched) == 0 {
		return nil, nil //nolint:nilnil // mirrors the repository contract
	}
	return &matched[0], nil
}

func (r *memUserRepo) Exists(_ context.Context, f userFilter) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.match(f)) > 0, nil
}

func (r *memUserRepo) NextSequenceValue(_ context.Context, sequenceName string) (int64, error) {
	if sequenceName != defaultSequence {
		return 0, errx.New("sequence does not exist", errx.WithCode(notFoundCode))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *memUserRepo) Create(_ context.Context, entity *user) (*user, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	entity.ID = r.seq
	r.users = append(r.users, *entity)
	return entity, nil
}

func (r *memUserRepo) Update(_ context.Context, entity *user) (*user, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == entity.ID {
			r.users[i] = *entity
			return entity, nil
		}
	}
	return nil, errx.New("no user found to update", errx.WithCode(wrongRowsCode))
}

func (r *memUserRepo) Delete(_ context.Context, entity *user) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == entity.ID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return errx.New("no user found to delete", errx.WithCode(wrongRowsCode))
}

func (r *memUserRepo) BulkCreate(_ context.Context, entities []user) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range entities {
		r.seq++
		entities[i].ID = r.seq
		r.users = append(r.users, entities[i])
	}
	return nil
}

func (r *memUserRepo) BulkUpdate(_ context.Context, entities []user) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		found := false
		for i := range r.users {
			if r.users[i].ID == e.ID {
				r.users[i] = e
				found = true
				break
			}
		}
		if !found {
			return errx.New("not all user were updated", errx.WithCode(wrongRowsCode))
		}
	}
	return nil
}

func (r *memUserRepo) BulkDelete(_ context.Context, entities []user) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		for i := range r.users {
			if r.users[i].ID == e.ID {
				r.users = append(r.users[:i], r.users[i+1:]...)
				break
			}
		}
	}
	return nil
}

func pagedUserService(repo *memUserRepo, opts ...crudsvc.Option[user, userFilter]) *crudsvc.Service[user, userFilter] {
	base := []crudsvc.Option[user, userFilter]{
		crudsvc.WithSortFields[user, userFilter]("name", "id"),
		crudsvc.WithListDecorator[user, userFilter](func(f userFilter, page pagination.Request, s sorter.Options) userFilter {
			f.Limit = page.Limit()
			f.Offset = page.Offset()
			f.OrderBy = s.ToSQL()
			return f
		}),
	}
	return crudsvc.New[user, userFilter](repo, append(base, opts...)...)
}

func TestSave(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	created, err := svc.Save(t.Context(), &user{Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice", created.Name)
}

func TestSaveNilEntity(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	_, err := svc.Save(t.Context(), nil)
	require.Error(t, err)

	var e errx.ErrorX
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.CodeDomainError, e.Code())
	assert.Contains(t, err.Error(), "entity is required")
}

func TestSaveAll(t *testing.T) {
	t.Parallel()

	repo := &memUserRepo{}
	svc := pagedUserService(repo)

	err := svc.SaveAll(t.Context(), []user{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)

	count, err := svc.ListAll(t.Context(), userFilter{})
	require.NoError(t, err)
	assert.Len(t, count, 2)

	err = svc.SaveAll(t.Context(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one entity is required")
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	created, err := svc.Save(t.Context(), &user{Name: "before"})
	require.NoError(t, err)

	created.Name = "after"
	updated, err := svc.Update(t.Context(), created)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)

	got, err := svc.GetElement(t.Context(), userFilter{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestUpdateMissingEntity(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	_, err := svc.Update(t.Context(), &user{ID: 999, Name: "ghost"})
	require.Error(t, err)

	var e errx.ErrorX
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.CodeDomainError, e.Code())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	created, err := svc.Save(t.Context(), &user{Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(t.Context(), created))

	exists, err := svc.Exists(t.Context(), userFilter{ID: created.ID})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetElement(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	created, err := svc.Save(t.Context(), &user{Name: "bob"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := svc.GetElement(t.Context(), userFilter{ID: created.ID})
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Name)
	})

	t.Run("not found keeps repository error code", func(t *testing.T) {
		_, err := svc.GetElement(t.Context(), userFilter{ID: 12345})
		require.Error(t, err)

		var e errx.ErrorX
		require.True(t, errors.As(err, &e))
		assert.Equal(t, notFoundCode, e.Code())
	})
}

func TestListPaged(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	for i := range 7 {
		_, err := svc.Save(t.Context(), &user{Name: fmt.Sprintf("user-%d", i)})
		require.NoError(t, err)
	}

	resp, err := svc.ListPaged(t.Context(), userFilter{}, pagination.Request{
		PageNumber: 2,
		PageSize:   3,
		SortBy:     "name",
		SortDir:    "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.PageNumber)
	assert.Equal(t, 3, resp.PageSize)
	assert.Equal(t, int64(7), resp.TotalElements)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Content, 3)
	assert.Equal(t, "user-3", resp.Content[0].Name)
	assert.True(t, resp.HasNext())
	assert.True(t, resp.HasPrev())
}

func TestListPagedDisallowedSortIgnored(t *testing.T) {
	t.Parallel()

	svc := pagedUserService(&memUserRepo{})

	_, err := svc.Save(t.Context(), &user{Name: "z"})
	require.NoError(t, err)

	resp, err := svc.ListPaged(t.Context(), userFilter{}, pagination.Request{
		PageNumber: 1,
		PageSize:   10,
		SortBy:     "password",
		SortDir:    "asc",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Content, 1)
}

func TestAsyncWrites(t *testing.T) {
	t.Parallel()

	pool := workpool.New(workpool.Config{Workers: 2, QueueCapacity: 8})
	defer pool.Close()

	svc := pagedUserService(&memUserRepo{},
		crudsvc.WithExecutor[user, userFilter](pool),
		crudsvc.WithAsyncWrites[user, userFilter](true),
	)

	created, err := svc.Save(t.Context(), &user{Name: "async"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.GetElement(t.Context(), userFilter{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "async", got.Name)
}
