package handlers

import (
	"fmt"

	"github.com/avissapr/coursework/internal/models"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/services"
	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler serves the employees resource, including the employee's
// project list and the form that assigns it to another project.
type EmployeeHandler struct {
	svc       *services.RosterService
	employees *repository.EmployeeRepository
	roles     *repository.RoleRepository
	projects  *repository.ProjectRepository
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(svc *services.RosterService) *EmployeeHandler {
	return &EmployeeHandler{
		svc:       svc,
		employees: repository.NewEmployeeRepository(),
		roles:     repository.NewRoleRepository(),
		projects:  repository.NewProjectRepository(),
	}
}

// Index lists all employees with their role names.
//
// Template: employees/index.html
func (h *EmployeeHandler) Index(c *fiber.Ctx) error {
	employees, err := h.employees.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Render("employees/index", fiber.Map{"Title": "Employees", "Employees": employees})
}

// Show displays an employee, its role and its projects.
//
// Template: employees/show.html
func (h *EmployeeHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c, "employees.show")
	if err != nil {
		return err
	}
	employee, err := h.employees.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	var role *models.Role
	if employee.RoleID != nil {
		role, err = h.roles.FindByID(c.Context(), *employee.RoleID)
		if err != nil {
			return err
		}
	}

	projects, err := h.employees.Projects(c.Context(), id)
	if err != nil {
		return err
	}
	allProjects, err := h.projects.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("employees/show", fiber.Map{
		"Title":       employee.Name,
		"Employee":    employee,
		"Role":        role,
		"Projects":    projects,
		"AllProjects": allProjects,
	})
}

// New renders an empty employee form.
func (h *EmployeeHandler) New(c *fiber.Ctx) error {
	data, err := h.formData(c, &models.Employee{})
	if err != nil {
		return err
	}
	return c.Render("employees/form", data)
}

// Edit renders the form for an existing employee.
func (h *EmployeeHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c, "employees.edit")
	if err != nil {
		return err
	}
	employee, err := h.employees.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	data, err := h.formData(c, employee)
	if err != nil {
		return err
	}
	return c.Render("employees/form", data)
}

// Create saves a new employee and redirects to it.
//
// Form Fields: name, address, start_date (yyyy-mm-dd), role_id (optional)
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	employee := &models.Employee{}
	bindEmployee(c, employee)
	return h.save(c, employee)
}

// Update saves changes to an existing employee.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "employees.update")
	if err != nil {
		return err
	}
	employee, err := h.employees.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	bindEmployee(c, employee)
	return h.save(c, employee)
}

// Delete removes an employee and returns to the list.
// Employees still assigned to a project are refused with 422.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "employees.delete")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEmployee(c.Context(), id); err != nil {
		return err
	}
	return c.Redirect("/employees")
}

func (h *EmployeeHandler) save(c *fiber.Ctx, employee *models.Employee) error {
	err := h.svc.SaveEmployee(c.Context(), employee)
	if err == nil {
		return c.Redirect(fmt.Sprintf("/employees/%d", employee.ID))
	}

	data, formErr := h.formData(c, employee)
	if formErr != nil {
		return formErr
	}
	return renderInvalid(c, err, "employees/form", data)
}

func (h *EmployeeHandler) formData(c *fiber.Ctx, employee *models.Employee) (fiber.Map, error) {
	roles, err := h.roles.ListAll(c.Context())
	if err != nil {
		return nil, err
	}

	data := fiber.Map{
		"Employee": employee,
		"Roles":    roles,
		"Title":    "New Employee",
		"Action":   "/employees",
	}
	if employee.RoleID != nil {
		data["SelectedRoleID"] = *employee.RoleID
	} else {
		data["SelectedRoleID"] = 0
	}
	if employee.ID != 0 {
		data["Title"] = "Editing Employee"
		data["Action"] = fmt.Sprintf("/employees/%d", employee.ID)
	}
	return data, nil
}

func bindEmployee(c *fiber.Ctx, employee *models.Employee) {
	employee.Name = c.FormValue("name")
	employee.Address = c.FormValue("address")
	employee.StartDate = formDate(c, "start_date")
	employee.RoleID = formOptionalID(c, "role_id")
}
