package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/account"
)

type identityRow struct {
	Role         string    `db:"role"`
	ID           string    `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Age          int       `db:"age"`
	Gender       string    `db:"gender"`
	Grade        int       `db:"grade"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row identityRow) unmap() account.Identity {
	return account.Identity{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		Role:         row.Role,
		Age:          row.Age,
		Gender:       row.Gender,
		Grade:        row.Grade,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapIdentity(idt account.Identity) identityRow {
	return identityRow{
		Role:         idt.Role,
		ID:           idt.ID,
		FirstName:    idt.FirstName,
		LastName:     idt.LastName,
		Email:        idt.Email,
		Age:          idt.Age,
		Gender:       idt.Gender,
		Grade:        idt.Grade,
		PasswordHash: idt.PasswordHash,
		CreatedAt:    idt.CreatedAt.UTC(),
		UpdatedAt:    idt.UpdatedAt.UTC(),
	}
}

// identityOrderColumns whitelists the columns list endpoints may order by.
var identityOrderColumns = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"age":        true,
	"grade":      true,
	"created_at": true,
	"updated_at": true,
}

type identityRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*identityRepository)(nil) // interface compliance check

func NewIdentityRepository(db *sqlx.DB) *identityRepository {
	return &identityRepository{db: db}
}

func (repo *identityRepository) CheckIDUniqueness(ctx context.Context, role, id string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM identity WHERE role = $1 AND id = $2)`, role, id)
	if err != nil {
		return errors.Wrap(err, "checking identity uniqueness")
	}
	if exists {
		return account.ErrIdentityExists
	}
	return nil
}

func (repo *identityRepository) CreateIdentity(ctx context.Context, idt account.Identity) (account.Identity, error) {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO identity (role, id, first_name, last_name, email, age, gender, grade, password_hash, created_at, updated_at)
		 VALUES (:role, :id, :first_name, :last_name, :email, :age, :gender, :grade, :password_hash, :created_at, :updated_at)`,
		mapIdentity(idt))
	if err != nil {
		return account.Identity{}, errors.Wrap(err, "inserting identity")
	}
	return idt, nil
}

func (repo *identityRepository) GetIdentity(ctx context.Context, role, id string) (account.Identity, error) {
	var row identityRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM identity WHERE role = $1 AND id = $2`, role, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Identity{}, account.ErrNotFound
		}
		return account.Identity{}, errors.Wrap(err, "finding identity")
	}
	return row.unmap(), nil
}

func (repo *identityRepository) QueryIdentities(ctx context.Context, role string, ordering []core.DBOrdering) ([]account.Identity, error) {
	query := `SELECT * FROM identity WHERE role = $1` + orderBy(ordering, identityOrderColumns, "id ASC")

	var rows []identityRow
	if err := repo.db.SelectContext(ctx, &rows, query, role); err != nil {
		return nil, errors.Wrap(err, "querying identities")
	}
	identities := make([]account.Identity, 0, len(rows))
	for _, row := range rows {
		identities = append(identities, row.unmap())
	}
	return identities, nil
}

func (repo *identityRepository) UpdateIdentity(ctx context.Context, idt account.Identity) (account.Identity, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE identity
		 SET first_name = :first_name, last_name = :last_name, email = :email, age = :age,
		     gender = :gender, grade = :grade, password_hash = :password_hash, updated_at = :updated_at
		 WHERE role = :role AND id = :id`,
		mapIdentity(idt))
	if err != nil {
		return account.Identity{}, errors.Wrap(err, "updating identity")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return account.Identity{}, account.ErrNotFound
	}
	return idt, nil
}

func (repo *identityRepository) DeleteIdentity(ctx context.Context, role, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM identity WHERE role = $1 AND id = $2`, role, id)
	if err != nil {
		return errors.Wrap(err, "deleting identity")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return account.ErrNotFound
	}
	return nil
}
