// Package repository implements the database access layer for the coursework CRUD application.
// Every method issues explicit SQL through database.DB and classifies failures with apperr.
// Repositories do not validate; the services package validates before calling them.
package repository

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/models"
)

// RoleRepository handles role-related database operations.
type RoleRepository struct{}

// NewRoleRepository creates a new instance of RoleRepository.
func NewRoleRepository() *RoleRepository {
	return &RoleRepository{}
}

// ListAll retrieves all roles ordered by department, then name.
func (r *RoleRepository) ListAll(ctx context.Context) ([]models.Role, error) {
	query := `
		SELECT id, name, department, created_at, updated_at
		FROM roles
		ORDER BY department, name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, apperr.Classify("roles.list", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Department, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, apperr.Classify("roles.list", err)
		}
		roles = append(roles, role)
	}

	return roles, apperr.Classify("roles.list", rows.Err())
}

// FindByID retrieves a role by primary key.
//
// Returns:
//   - *models.Role: the role
//   - error: apperr NotFound when no row matches, IOFailure on database errors
func (r *RoleRepository) FindByID(ctx context.Context, id int) (*models.Role, error) {
	query := `SELECT id, name, department, created_at, updated_at FROM roles WHERE id = $1`

	var role models.Role
	err := database.DB.QueryRow(ctx, query, id).
		Scan(&role.ID, &role.Name, &role.Department, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, apperr.Classify("roles.find", err)
	}

	return &role, nil
}

// Exists reports whether a role with the given ID is stored.
func (r *RoleRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, id).Scan(&exists)
	return exists, apperr.Classify("roles.exists", err)
}

// Create inserts a new role.
//
// Side Effects: Populates role.ID, role.CreatedAt and role.UpdatedAt
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (name, department)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := database.DB.QueryRow(ctx, query, role.Name, role.Department).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	return apperr.Classify("roles.create", err)
}

// Update writes name and department of an existing role.
//
// Side Effects: Refreshes role.UpdatedAt
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	query := `
		UPDATE roles
		SET name = $1, department = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := database.DB.QueryRow(ctx, query, role.Name, role.Department, role.ID).Scan(&role.UpdatedAt)
	return apperr.Classify("roles.update", err)
}

// Delete removes a role. Employees still pointing at the role block the delete.
func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return apperr.ClassifyField("roles.delete", "role", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("roles.delete", nil)
	}
	return nil
}

// Employees lists the employees holding a role (role has many employees).
func (r *RoleRepository) Employees(ctx context.Context, roleID int) ([]models.Employee, error) {
	query := `
		SELECT id, role_id, name, address, start_date, created_at, updated_at
		FROM employees
		WHERE role_id = $1
		ORDER BY name
	`

	rows, err := database.DB.Query(ctx, query, roleID)
	if err != nil {
		return nil, apperr.Classify("roles.employees", err)
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	return employees, apperr.Classify("roles.employees", err)
}
