package repository

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/models"
	"github.com/jackc/pgx/v5"
)

// ProjectRepository handles project-related database operations,
// including the project side of the employee/project association.
//
// The employees_count column is written as given; keeping it in step with the
// association is the job of services.RosterService.SaveProject.
type ProjectRepository struct{}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// ListAll retrieves all projects ordered by name.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, name, employees_count, created_at, updated_at
		FROM projects
		ORDER BY name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, apperr.Classify("projects.list", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	return projects, apperr.Classify("projects.list", err)
}

// FindByID retrieves a project by primary key.
//
// Returns:
//   - error: apperr NotFound when no row matches
func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*models.Project, error) {
	query := `SELECT id, name, employees_count, created_at, updated_at FROM projects WHERE id = $1`

	var p models.Project
	err := database.DB.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.EmployeesCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, apperr.Classify("projects.find", err)
	}

	return &p, nil
}

// Exists reports whether a project with the given ID is stored.
func (r *ProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	return exists, apperr.Classify("projects.exists", err)
}

// Create inserts a new project.
//
// Side Effects: Populates project.ID, CreatedAt and UpdatedAt
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (name, employees_count)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := database.DB.QueryRow(ctx, query, p.Name, p.EmployeesCount).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return apperr.Classify("projects.create", err)
}

// Update writes name and employees_count of an existing project.
//
// Side Effects: Refreshes project.UpdatedAt
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, employees_count = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := database.DB.QueryRow(ctx, query, p.Name, p.EmployeesCount, p.ID).Scan(&p.UpdatedAt)
	return apperr.Classify("projects.update", err)
}

// Delete removes a project. Projects with employees assigned cannot be deleted
// until the join rows are removed.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperr.ClassifyField("projects.delete", "project", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("projects.delete", nil)
	}
	return nil
}

// Employees lists the employees working on a project, joining through employeeprojects.
func (r *ProjectRepository) Employees(ctx context.Context, projectID int) ([]models.Employee, error) {
	query := `
		SELECT e.id, e.role_id, e.name, e.address, e.start_date, e.created_at, e.updated_at
		FROM employees e
		JOIN employeeprojects ep ON ep.employee_id = e.id
		WHERE ep.project_id = $1
		ORDER BY e.name
	`

	rows, err := database.DB.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperr.Classify("projects.employees", err)
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	return employees, apperr.Classify("projects.employees", err)
}

// CountEmployees returns the current size of a project's employee set,
// counted from the join table.
func (r *ProjectRepository) CountEmployees(ctx context.Context, projectID int) (int, error) {
	var count int
	err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM employeeprojects WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, apperr.Classify("projects.count_employees", err)
	}
	return count, nil
}

// scanProjects reads project rows selected in the canonical column order
// (id, name, employees_count, created_at, updated_at).
func scanProjects(rows pgx.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.EmployeesCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
