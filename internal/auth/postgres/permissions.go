package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

const departmentPermissionsQuery = `SELECT d.name AS department, p.name AS permission
	FROM departments d
	LEFT JOIN department_permission dp ON dp.department_id = d.id
	LEFT JOIN permissions p ON p.id = dp.permission_id
	WHERE d.id = ?
	ORDER BY p.name`

type departmentPermissionRow struct {
	Department string         `db:"department"`
	Permission sql.NullString `db:"permission"`
}

// PermissionRepository resolves department grants with a single join.
type PermissionRepository struct {
	db *sqlx.DB
}

func NewPermissionRepository(db *sqlx.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// DepartmentPermissions returns an empty department name when the department does not exist.
func (r *PermissionRepository) DepartmentPermissions(ctx context.Context, departmentID int64) (string, []string, error) {
	var rows []departmentPermissionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(departmentPermissionsQuery), departmentID); err != nil {
		return "", nil, err
	}
	if len(rows) == 0 {
		return "", nil, nil
	}

	perms := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Permission.Valid {
			perms = append(perms, row.Permission.String)
		}
	}
	return rows[0].Department, perms, nil
}
