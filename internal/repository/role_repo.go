package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RoleRepository looks up the role record for an authenticated subject. The
// roles table is the single authority for admin access.
type RoleRepository interface {
	GetRole(ctx context.Context, subjectID string) (string, error)
}

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(database *sql.DB) RoleRepository {
	return &roleRepository{db: database}
}

// GetRole returns the role for subjectID, or "" when no record exists.
func (r *roleRepository) GetRole(ctx context.Context, subjectID string) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM roles WHERE subject_id = $1`, subjectID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error querying role for %s: %w", subjectID, err)
	}
	return role, nil
}
