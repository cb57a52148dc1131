package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/user"
)

var userOrderings = map[string]func(a, b user.User) int{
	"username":   func(a, b user.User) int { return strings.Compare(a.Username, b.Username) },
	"role":       func(a, b user.User) int { return strings.Compare(a.Role, b.Role) },
	"class":      func(a, b user.User) int { return a.Class.Rank() - b.Class.Rank() },
	"is_active":  func(a, b user.User) int { return boolCmp(a.IsActive, b.IsActive) },
	"created_at": func(a, b user.User) int { return timeCmp(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano()) },
	"updated_at": func(a, b user.User) int { return timeCmp(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano()) },
	"last_login": func(a, b user.User) int { return timeCmp(a.LastLogin.Time.UnixNano(), b.LastLogin.Time.UnixNano()) },
}

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username string, excludedIDs []string, _ ...core.DBExecutor) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, usr := range repo.db.users {
		if usr.Username == username && !contains(excludedIDs, usr.ID) {
			return user.ErrUsernameExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if err := repo.CheckUsernameUniqueness(ctx, usr.Username, nil); err != nil {
		return user.User{}, err
	}

	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	usr.ID = uuid.New().String()
	repo.db.users[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users := make([]user.User, 0, len(repo.db.users))
	for _, usr := range repo.db.users {
		if filter != nil && !filter.IsEmpty() {
			if filter.Search != "" && !strings.Contains(strings.ToLower(usr.Username), strings.ToLower(filter.Search)) {
				continue
			}
			if len(filter.Roles) > 0 && !contains(filter.Roles, usr.Role) {
				continue
			}
			if filter.Class != "" && usr.Class != filter.Class {
				continue
			}
			if filter.IsActive != nil && usr.IsActive != *filter.IsActive {
				continue
			}
		}
		users = append(users, *usr)
	}

	ordering = core.FilterOrderings(ordering, map[string]string{
		"username": "username", "role": "role", "class": "class", "is_active": "is_active",
		"created_at": "created_at", "updated_at": "updated_at", "last_login": "last_login",
	})
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	sort.SliceStable(users, func(i, j int) bool {
		for _, ord := range ordering {
			c := userOrderings[ord.Field](users[i], users[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return users, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter, _ ...core.DBExecutor) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.users[filter.ID]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	if filter.Username != "" {
		for _, usr := range repo.db.users {
			if usr.Username == filter.Username {
				return *usr, nil
			}
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	if err := repo.CheckUsernameUniqueness(ctx, usr.Username, []string{usr.ID}); err != nil {
		return user.User{}, err
	}

	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.users[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.db.users[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var cnt int
	for _, id := range ids {
		if repo.db.deleteUser(id) {
			cnt++
		}
	}
	return cnt, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func timeCmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
