package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/blood-heros/apiserver/types"
)

const userColumns = `id, email, name, photo, blood_group, district, upazila, status, role, created_at`

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Photo,
		&user.BloodGroup,
		&user.District,
		&user.Upazila,
		&user.Status,
		&user.Role,
		&user.CreatedAt,
	)
	return user, err
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]types.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
}

func (r *UserRepository) Search(ctx context.Context, search types.UserSearch) ([]types.User, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("blood_group", search.BloodGroup)
	add("district", search.District)
	add("upazila", search.Upazila)

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at`
	return r.list(ctx, query, args...)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return types.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = newID()

	const query = `
		INSERT INTO users (id, email, name, photo, blood_group, district, upazila, status, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.Photo,
		user.BloodGroup,
		user.District,
		user.Upazila,
		user.Status,
		user.Role,
		user.CreatedAt,
	); err != nil {
		return types.User{}, translate(err)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email string, profile types.UserProfile) (types.UpdateResult, error) {
	const query = `
		UPDATE users
		SET name = $1,
			email = $2,
			blood_group = $3,
			photo = $4,
			upazila = $5,
			district = $6
		WHERE email = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		profile.Name,
		profile.Email,
		profile.BloodGroup,
		profile.Photo,
		profile.Upazila,
		profile.District,
		email,
	)
	if err != nil {
		return types.UpdateResult{}, translate(err)
	}
	return updateResult(result)
}

func (r *UserRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return r.setColumn(ctx, "status", id, status)
}

func (r *UserRepository) SetRole(ctx context.Context, id, role string) (types.UpdateResult, error) {
	return r.setColumn(ctx, "role", id, role)
}

// setColumn is only called with the fixed column names above.
func (r *UserRepository) setColumn(ctx context.Context, column, id, value string) (types.UpdateResult, error) {
	if err := validID(id); err != nil {
		return types.UpdateResult{}, err
	}
	query := `UPDATE users SET ` + column + ` = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return types.UpdateResult{}, err
	}
	return updateResult(result)
}
