package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"signdesk/internal/entities"
	"signdesk/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "userRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) AddUser(ctx context.Context, user models.User) error {
	op := pkg + "AddUser"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles(id, email, name, pass_hash, role) VALUES($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.PassHash, user.Role)

	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			if pgErr.Code == "23505" {
				return &models.UniqueConstraintError{
					Constraint: pgErr.Constraint,
					Err:        models.ErrUNIQUEConstraintFailed,
				}
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) UserByID(ctx context.Context, id string) (*models.User, error) {
	op := pkg + "UserByID"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.email AS email,
			u.name AS name,
			u.pass_hash AS pass_hash,
			u.role AS role
		FROM profiles u
		WHERE u.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawUser), nil
}

func (r *repository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	op := pkg + "UserByEmail"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.email AS email,
			u.name AS name,
			u.pass_hash AS pass_hash,
			u.role AS role
		FROM profiles u
		WHERE u.email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawUser), nil
}

func toModel(raw *entities.User) *models.User {
	return &models.User{
		ID:       raw.ID,
		Email:    raw.Email,
		Name:     raw.Name,
		PassHash: raw.PassHash,
		Role:     models.Role(raw.Role),
	}
}
