// Package models defines the domain entities and form DTOs for the coursework CRUD application.
// Entities are plain structs mapped to PostgreSQL tables; each one validates itself
// with explicit presence rules from the validation package.
package models

import (
	"time"

	"github.com/avissapr/coursework/internal/validation"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Role is a job role within a department. A role has many employees.
//
// Database Table: roles
type Role struct {
	ID         int       `db:"id"`         // Primary key
	Name       string    `db:"name"`       // Required, e.g. "Developer"
	Department string    `db:"department"` // Required, e.g. "Engineering"
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Validate checks presence of name and department.
func (r *Role) Validate() validation.Errors {
	var errs validation.Errors
	errs.RequireString("name", r.Name)
	errs.RequireString("department", r.Department)
	return errs
}

// Employee is a staff member. An employee optionally belongs to a role and
// works on projects through Employeeproject rows.
//
// Database Table: employees
type Employee struct {
	ID        int        `db:"id"`
	RoleID    *int       `db:"role_id"` // Nullable foreign key to roles.id
	Name      string     `db:"name"`
	Address   string     `db:"address"`
	StartDate *time.Time `db:"start_date"` // Date only; nil means not supplied
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Validate checks presence of name, address and start_date.
// The role reference is optional.
func (e *Employee) Validate() validation.Errors {
	var errs validation.Errors
	errs.RequireString("name", e.Name)
	errs.RequireString("address", e.Address)
	errs.RequireDate("start_date", e.StartDate)
	return errs
}

// StartDateString formats the start date for forms; empty when unset.
func (e Employee) StartDateString() string {
	if e.StartDate == nil {
		return ""
	}
	return e.StartDate.Format(DateLayout)
}

// Project groups employees. EmployeesCount is a denormalized copy of the size
// of the project's employee set, refreshed every time the project is saved.
//
// Database Table: projects
type Project struct {
	ID             int       `db:"id"`
	Name           string    `db:"name"`
	EmployeesCount int       `db:"employees_count"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Validate checks presence of name.
func (p *Project) Validate() validation.Errors {
	var errs validation.Errors
	errs.RequireString("name", p.Name)
	return errs
}

// Employeeproject joins one employee to one project. The pair is its identity.
//
// Database Table: employeeprojects (composite primary key)
type Employeeproject struct {
	EmployeeID int       `db:"employee_id"` // Required, foreign key to employees.id
	ProjectID  int       `db:"project_id"`  // Required, foreign key to projects.id
	CreatedAt  time.Time `db:"created_at"`
}

// Validate checks presence of both keys. A missing key is a violation, never an error.
func (ep *Employeeproject) Validate() validation.Errors {
	var errs validation.Errors
	errs.RequireID("employee_id", ep.EmployeeID)
	errs.RequireID("project_id", ep.ProjectID)
	return errs
}

// Thing is the scaffold resource used by the controller exercises.
//
// Database Table: things
type Thing struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Validate checks presence of name.
func (t *Thing) Validate() validation.Errors {
	var errs validation.Errors
	errs.RequireString("name", t.Name)
	return errs
}

// ============================================================================
// View Models - Template Rendering
// ============================================================================

// EmployeeWithRole is an employee row with its role name resolved for list views.
type EmployeeWithRole struct {
	Employee
	RoleName string // Empty when the employee has no role
}
