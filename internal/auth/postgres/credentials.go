package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	"gorm.io/gorm"
)

const identityQuery = `SELECT e.id, e.email, COALESCE(e.fname, ''), COALESCE(e.lname, ''), e.password, e.department_id, d.name
	FROM employees e
	JOIN departments d ON d.id = e.department_id`

// CredentialStore reads employee credentials for the authentication gate.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (r *CredentialStore) GetByID(ctx context.Context, id int64) (*auth.Identity, error) {
	row := database.Conn(ctx, r.db).Raw(identityQuery+` WHERE e.id = ?`, id).Row()
	return scanIdentity(row)
}

func (r *CredentialStore) GetByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	row := database.Conn(ctx, r.db).Raw(identityQuery+` WHERE e.email = ?`, email).Row()
	return scanIdentity(row)
}

func scanIdentity(row *sql.Row) (*auth.Identity, error) {
	var i auth.Identity
	err := row.Scan(&i.ID, &i.Email, &i.FirstName, &i.LastName, &i.PasswordHash, &i.DepartmentID, &i.DepartmentName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}
