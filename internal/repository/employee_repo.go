package repository

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/models"
	"github.com/jackc/pgx/v5"
)

// EmployeeRepository handles employee-related database operations,
// including the employee side of the employee/project association.
type EmployeeRepository struct{}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{}
}

// ListAll retrieves all employees with their role name, ordered by name.
//
// Database: LEFT JOIN roles so employees without a role are included
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]models.EmployeeWithRole, error) {
	query := `
		SELECT e.id, e.role_id, e.name, e.address, e.start_date, e.created_at, e.updated_at,
		       COALESCE(r.name, '') AS role_name
		FROM employees e
		LEFT JOIN roles r ON r.id = e.role_id
		ORDER BY e.name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, apperr.Classify("employees.list", err)
	}
	defer rows.Close()

	var employees []models.EmployeeWithRole
	for rows.Next() {
		var e models.EmployeeWithRole
		err := rows.Scan(&e.ID, &e.RoleID, &e.Name, &e.Address, &e.StartDate, &e.CreatedAt, &e.UpdatedAt, &e.RoleName)
		if err != nil {
			return nil, apperr.Classify("employees.list", err)
		}
		employees = append(employees, e)
	}

	return employees, apperr.Classify("employees.list", rows.Err())
}

// FindByID retrieves an employee by primary key.
//
// Returns:
//   - error: apperr NotFound when no row matches
func (r *EmployeeRepository) FindByID(ctx context.Context, id int) (*models.Employee, error) {
	query := `
		SELECT id, role_id, name, address, start_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e models.Employee
	err := database.DB.QueryRow(ctx, query, id).
		Scan(&e.ID, &e.RoleID, &e.Name, &e.Address, &e.StartDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, apperr.Classify("employees.find", err)
	}

	return &e, nil
}

// Exists reports whether an employee with the given ID is stored.
func (r *EmployeeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	return exists, apperr.Classify("employees.exists", err)
}

// Create inserts a new employee.
//
// Side Effects: Populates employee.ID, CreatedAt and UpdatedAt
func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (role_id, name, address, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := database.DB.QueryRow(ctx, query, e.RoleID, e.Name, e.Address, e.StartDate).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return apperr.ClassifyReference("employees.create", err)
}

// Update writes all editable columns of an existing employee.
//
// Side Effects: Refreshes employee.UpdatedAt
func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE employees
		SET role_id = $1, name = $2, address = $3, start_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := database.DB.QueryRow(ctx, query, e.RoleID, e.Name, e.Address, e.StartDate, e.ID).Scan(&e.UpdatedAt)
	return apperr.ClassifyReference("employees.update", err)
}

// Delete removes an employee. Join rows are not cascaded; an employee still
// assigned to projects cannot be deleted until those rows are removed.
func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return apperr.ClassifyField("employees.delete", "employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("employees.delete", nil)
	}
	return nil
}

// Projects lists the projects an employee works on, joining through employeeprojects.
func (r *EmployeeRepository) Projects(ctx context.Context, employeeID int) ([]models.Project, error) {
	query := `
		SELECT p.id, p.name, p.employees_count, p.created_at, p.updated_at
		FROM projects p
		JOIN employeeprojects ep ON ep.project_id = p.id
		WHERE ep.employee_id = $1
		ORDER BY p.name
	`

	rows, err := database.DB.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperr.Classify("employees.projects", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	return projects, apperr.Classify("employees.projects", err)
}

// scanEmployees reads employee rows selected in the canonical column order
// (id, role_id, name, address, start_date, created_at, updated_at).
func scanEmployees(rows pgx.Rows) ([]models.Employee, error) {
	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.RoleID, &e.Name, &e.Address, &e.StartDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
