// Package services provides the business logic layer for the coursework CRUD application.
// Every write goes through a save pipeline that validates before touching the database,
// so a rejected record never causes a partial write.
package services

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/validation"
)

// RosterService owns the write paths for roles, employees, projects, their
// employee/project links and things.
//
// Dependencies:
//   - One repository per table
//   - logging.Logger: records saves, deletes and rejected records as events
//
// Related:
//   - Resource handlers (roles.go, employees.go, projects.go, employeeprojects.go, things.go)
type RosterService struct {
	roles     *repository.RoleRepository
	employees *repository.EmployeeRepository
	projects  *repository.ProjectRepository
	links     *repository.EmployeeprojectRepository
	things    *repository.ThingRepository
	logger    *logging.Logger
}

// NewRosterService creates a RosterService backed by the shared database pool.
func NewRosterService(logger *logging.Logger) *RosterService {
	return &RosterService{
		roles:     repository.NewRoleRepository(),
		employees: repository.NewEmployeeRepository(),
		projects:  repository.NewProjectRepository(),
		links:     repository.NewEmployeeprojectRepository(),
		things:    repository.NewThingRepository(),
		logger:    logger,
	}
}

// SaveRole validates a role and inserts it (ID == 0) or updates it.
//
// Returns:
//   - error: ValidationFailure listing the violations, or the repository error
func (s *RosterService) SaveRole(ctx context.Context, role *models.Role) error {
	if err := s.reject("roles.save", role.Validate()); err != nil {
		return err
	}

	var err error
	if role.ID == 0 {
		err = s.roles.Create(ctx, role)
	} else {
		err = s.roles.Update(ctx, role)
	}
	if err != nil {
		return err
	}

	s.saved("role", role.ID)
	return nil
}

// DeleteRole removes a role. Fails with ValidationFailure while employees hold it.
func (s *RosterService) DeleteRole(ctx context.Context, id int) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.deleted("role", id)
	return nil
}

// SaveEmployee validates an employee and inserts or updates it.
// A role reference, when given, must point at a stored role.
func (s *RosterService) SaveEmployee(ctx context.Context, employee *models.Employee) error {
	errs := employee.Validate()
	if employee.RoleID != nil {
		exists, err := s.roles.Exists(ctx, *employee.RoleID)
		if err != nil {
			return err
		}
		if !exists {
			errs.Add("role_id", validation.ReasonExists)
		}
	}
	if err := s.reject("employees.save", errs); err != nil {
		return err
	}

	var err error
	if employee.ID == 0 {
		err = s.employees.Create(ctx, employee)
	} else {
		err = s.employees.Update(ctx, employee)
	}
	if err != nil {
		return err
	}

	s.saved("employee", employee.ID)
	return nil
}

// DeleteEmployee removes an employee. Fails with ValidationFailure while the
// employee is still linked to a project.
func (s *RosterService) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	s.deleted("employee", id)
	return nil
}

// SaveProject runs the project save pipeline:
//
//  1. recompute EmployeesCount from the join table, overwriting the caller's value
//  2. validate
//  3. persist, only if valid
//
// A project that was never inserted has no links, so its count is 0.
// Linking or unlinking employees does not call this; the stored count is
// refreshed on the project's next save.
func (s *RosterService) SaveProject(ctx context.Context, project *models.Project) error {
	if err := s.recount(ctx, project); err != nil {
		return err
	}
	if err := s.reject("projects.save", project.Validate()); err != nil {
		return err
	}

	var err error
	if project.ID == 0 {
		err = s.projects.Create(ctx, project)
	} else {
		err = s.projects.Update(ctx, project)
	}
	if err != nil {
		return err
	}

	s.saved("project", project.ID)
	s.logger.Event(logging.EventProjectRecounted, map[string]interface{}{
		"project_id":      project.ID,
		"employees_count": project.EmployeesCount,
	})
	return nil
}

// Recount loads a project and saves it again, which refreshes its stored
// employees_count.
func (s *RosterService) Recount(ctx context.Context, projectID int) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Fails with ValidationFailure while
// employees are still linked to it.
func (s *RosterService) DeleteProject(ctx context.Context, id int) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.deleted("project", id)
	return nil
}

func (s *RosterService) recount(ctx context.Context, project *models.Project) error {
	if project.ID == 0 {
		project.EmployeesCount = 0
		return nil
	}
	count, err := s.projects.CountEmployees(ctx, project.ID)
	if err != nil {
		return err
	}
	project.EmployeesCount = count
	return nil
}

// Link assigns an employee to a project.
//
// Both identifiers are required; a missing one is a presence violation and
// nothing is queried. Identifiers that do not match a stored record are an
// "exists" violation. Linking an already linked pair succeeds without a write.
//
// Returns:
//   - bool: true when a new link was stored
//   - error: ValidationFailure, or the repository error
func (s *RosterService) Link(ctx context.Context, ep *models.Employeeproject) (bool, error) {
	if err := s.reject("employeeprojects.save", ep.Validate()); err != nil {
		return false, err
	}

	var errs validation.Errors
	employeeExists, err := s.employees.Exists(ctx, ep.EmployeeID)
	if err != nil {
		return false, err
	}
	if !employeeExists {
		errs.Add("employee_id", validation.ReasonExists)
	}
	projectExists, err := s.projects.Exists(ctx, ep.ProjectID)
	if err != nil {
		return false, err
	}
	if !projectExists {
		errs.Add("project_id", validation.ReasonExists)
	}
	if err := s.reject("employeeprojects.save", errs); err != nil {
		return false, err
	}

	created, err := s.links.Create(ctx, ep)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Event(logging.EventEmployeeLinked, map[string]interface{}{
			"employee_id": ep.EmployeeID,
			"project_id":  ep.ProjectID,
		})
	}
	return created, nil
}

// Unlink removes the link between an employee and a project.
//
// Returns:
//   - error: NotFound when the pair is not linked
func (s *RosterService) Unlink(ctx context.Context, employeeID, projectID int) error {
	link, err := s.links.Find(ctx, employeeID, projectID)
	if err != nil {
		return err
	}
	if err := s.links.Delete(ctx, employeeID, projectID); err != nil {
		return err
	}
	s.logger.Event(logging.EventEmployeeUnlinked, map[string]interface{}{
		"employee_id": link.EmployeeID,
		"project_id":  link.ProjectID,
		"linked_at":   link.CreatedAt,
	})
	return nil
}

// SaveThing validates and inserts a thing. Things are never updated.
func (s *RosterService) SaveThing(ctx context.Context, thing *models.Thing) error {
	if err := s.reject("things.save", thing.Validate()); err != nil {
		return err
	}
	if err := s.things.Create(ctx, thing); err != nil {
		return err
	}
	s.saved("thing", thing.ID)
	return nil
}

// DeleteThing removes a thing.
func (s *RosterService) DeleteThing(ctx context.Context, id int) error {
	if err := s.things.Delete(ctx, id); err != nil {
		return err
	}
	s.deleted("thing", id)
	return nil
}

// reject turns a non-empty violation set into a ValidationFailure and logs it.
func (s *RosterService) reject(op string, errs validation.Errors) error {
	if errs.Valid() {
		return nil
	}
	s.logger.Event(logging.EventValidationFailed, map[string]interface{}{
		"op":         op,
		"violations": errs.Error(),
	})
	return apperr.NewValidation(op, errs)
}

func (s *RosterService) saved(record string, id int) {
	s.logger.Event(logging.EventRecordSaved, map[string]interface{}{"record": record, "id": id})
}

func (s *RosterService) deleted(record string, id int) {
	s.logger.Event(logging.EventRecordDeleted, map[string]interface{}{"record": record, "id": id})
}
