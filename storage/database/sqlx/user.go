package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/user"
)

const userColumns = `id, username, role, COALESCE(class, '') AS class, is_active, password_hash, created_at, updated_at, last_login`

var userOrderingFields = map[string]string{
	"username":   "username",
	"role":       "role",
	"class":      "class",
	"is_active":  "is_active",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"last_login": "last_login",
}

type userRepository struct {
	baseRepository
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{baseRepository{exec: exec}}
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedIDs []string, exec ...core.DBExecutor) error {
	if excludedIDs == nil {
		excludedIDs = []string{}
	}
	var exists bool
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM app_users WHERE username = $1 AND NOT (id::text = ANY($2)))`,
		username, pq.Array(excludedIDs),
	).Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	if exists {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO app_users (id, username, role, class, is_active, password_hash, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`,
		usr.ID, usr.Username, usr.Role, string(usr.Class), usr.IsActive, usr.PasswordHash,
		usr.CreatedAt.UTC(), usr.UpdatedAt.UTC(), usr.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	var where whereBuilder
	if filter != nil && !filter.IsEmpty() {
		if filter.Search != "" {
			where.add("username ILIKE ?", "%"+filter.Search+"%")
		}
		if len(filter.Roles) > 0 {
			where.add("role = ANY(?)", pq.Array(filter.Roles))
		}
		if filter.Class != "" {
			where.add("class = ?", string(filter.Class))
		}
		if filter.IsActive != nil {
			where.add("is_active = ?", *filter.IsActive)
		}
	}

	orderBy := core.OrderByClause(core.FilterOrderings(ordering, userOrderingFields))
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	users := make([]user.User, 0)
	q := "SELECT " + userColumns + " FROM app_users" + where.String() + " ORDER BY " + orderBy
	if err := selectInto(ctx, repo.getExec(exec), &users, q, where.args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	var where whereBuilder
	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		where.add("id = ?", filter.ID)
	case filter.Username != "":
		where.add("username = ?", filter.Username)
	default:
		return user.User{}, user.ErrNotFound
	}

	users := make([]user.User, 0, 1)
	q := "SELECT " + userColumns + " FROM app_users" + where.String() + " LIMIT 1"
	if err := selectInto(ctx, repo.getExec(exec), &users, q, where.args...); err != nil {
		return user.User{}, errors.Wrap(err, "finding user")
	}
	if len(users) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return users[0], nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	res, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE app_users
		SET username = $2, role = $3, class = NULLIF($4, ''), is_active = $5, password_hash = $6, updated_at = $7, last_login = $8
		WHERE id = $1`,
		usr.ID, usr.Username, usr.Role, string(usr.Class), usr.IsActive, usr.PasswordHash, usr.UpdatedAt.UTC(), usr.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := rowsAffected(res); err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	} else if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM app_users WHERE id::text = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	return rowsAffected(res)
}

