package pgsql

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, name, password_hash, company_id,
	created_at, created_by, last_updated_at, last_updated_by, version, deleted_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (user_id, email, name, password_hash, company_id,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.UserID, m.Email, m.Name, m.PasswordHash, m.CompanyID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	return mapError(err, "failed to save user")
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return nil, mapError(err, "failed to query user")
	}
	modelUser, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "user not found")
	}
	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1 AND deleted_at IS NULL", userID)
}

// FindUserByEmail includes deleted users so login can reject them explicitly.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxUserRepository) FindActor(ctx context.Context, userID string) (*domain.Actor, error) {
	var (
		actor     domain.Actor
		companyID *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT u.user_id, u.name, u.company_id, COALESCE(c.is_approved, false)
		FROM users u
		LEFT JOIN companies c ON c.company_id = u.company_id
		WHERE u.user_id = $1 AND u.deleted_at IS NULL`, userID,
	).Scan(&actor.UserID, &actor.UserName, &companyID, &actor.CompanyApproved)
	if err != nil {
		return nil, mapError(err, "failed to resolve actor")
	}
	if companyID != nil {
		actor.CompanyID = *companyID
	}
	return &actor, nil
}
