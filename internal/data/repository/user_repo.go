package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhive/internal/data/entity"
	"healthhive/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `email, name, role, status, applying_for, last_login_time, created_at`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user; the email primary key enforces uniqueness.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		user.Email,
		user.Name,
		user.Role,
		user.Status,
		user.ApplyingFor,
		user.LastLoginTime,
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) Find(ctx context.Context, filter UserFilter) ([]*entity.User, error) {
	var cond conditions
	if filter.Role != "" {
		cond.add("role = $%d", filter.Role)
	}
	if filter.Status != "" {
		cond.add("status = $%d", filter.Status)
	}
	if filter.ApplyingFor != "" {
		cond.add("applying_for = $%d", filter.ApplyingFor)
	}

	query := `SELECT ` + userColumns + ` FROM users` + cond.where() + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, cond.args...)
	if err != nil {
		r.log.Error("Failed to find users", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateLoginTime(ctx context.Context, email string, at time.Time) error {
	query := `UPDATE users SET last_login_time = $2 WHERE email = $1`

	result, err := r.db.Exec(ctx, query, email, at)
	if err != nil {
		r.log.Error("Failed to update login time", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("update login time %s: %w", email, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateRoleStatus(ctx context.Context, email string, role entity.UserRole, status entity.ApplicationStatus) error {
	query := `UPDATE users SET role = $2, status = $3 WHERE email = $1`

	result, err := r.db.Exec(ctx, query, email, role, status)
	if err != nil {
		r.log.Error("Failed to update user role",
			zap.Error(err),
			zap.String("email", email),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("update user %s role: %w", email, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Status,
		&user.ApplyingFor,
		&user.LastLoginTime,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
