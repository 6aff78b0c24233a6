package repository

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/models"
)

// EmployeeprojectRepository handles the employeeprojects join table that links
// employees to projects (many-to-many).
type EmployeeprojectRepository struct{}

// NewEmployeeprojectRepository creates a new instance of EmployeeprojectRepository.
func NewEmployeeprojectRepository() *EmployeeprojectRepository {
	return &EmployeeprojectRepository{}
}

// Create links an employee to a project.
// Idempotent operation - linking an existing pair again is a no-op.
//
// Returns:
//   - bool: true when a new row was inserted
//   - error: ValidationFailure when either side no longer exists, IOFailure otherwise
//
// Database: Uses ON CONFLICT DO NOTHING on the composite primary key
func (r *EmployeeprojectRepository) Create(ctx context.Context, ep *models.Employeeproject) (bool, error) {
	query := `
		INSERT INTO employeeprojects (employee_id, project_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_id, project_id) DO NOTHING
	`

	tag, err := database.DB.Exec(ctx, query, ep.EmployeeID, ep.ProjectID)
	if err != nil {
		return false, apperr.ClassifyReference("employeeprojects.create", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Find retrieves the join row for a pair.
//
// Returns:
//   - error: apperr NotFound when the pair is not linked
func (r *EmployeeprojectRepository) Find(ctx context.Context, employeeID, projectID int) (*models.Employeeproject, error) {
	query := `
		SELECT employee_id, project_id, created_at
		FROM employeeprojects
		WHERE employee_id = $1 AND project_id = $2
	`

	var ep models.Employeeproject
	err := database.DB.QueryRow(ctx, query, employeeID, projectID).Scan(&ep.EmployeeID, &ep.ProjectID, &ep.CreatedAt)
	if err != nil {
		return nil, apperr.Classify("employeeprojects.find", err)
	}
	return &ep, nil
}

// Delete unlinks an employee from a project.
//
// Returns:
//   - error: apperr NotFound when the pair was not linked
//
// The project's employees_count is left untouched.
func (r *EmployeeprojectRepository) Delete(ctx context.Context, employeeID, projectID int) error {
	query := `DELETE FROM employeeprojects WHERE employee_id = $1 AND project_id = $2`

	tag, err := database.DB.Exec(ctx, query, employeeID, projectID)
	if err != nil {
		return apperr.Classify("employeeprojects.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("employeeprojects.delete", nil)
	}
	return nil
}
