// Package fabricate builds valid model records for tests, so each test only
// spells out the fields it cares about.
package fabricate

import (
	"time"

	"github.com/avissapr/coursework/internal/models"
)

// StartDate is the start date given to fabricated employees.
var StartDate = time.Date(2012, 5, 29, 0, 0, 0, 0, time.UTC)

// Role returns a valid, unsaved role.
func Role(opts ...func(*models.Role)) *models.Role {
	r := &models.Role{Name: "Developer", Department: "Engineering"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Employee returns a valid, unsaved employee without a role.
func Employee(opts ...func(*models.Employee)) *models.Employee {
	d := StartDate
	e := &models.Employee{
		Name:      "Ada Lovelace",
		Address:   "12 St James's Square, London",
		StartDate: &d,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project returns a valid, unsaved project.
func Project(opts ...func(*models.Project)) *models.Project {
	p := &models.Project{Name: "gamma"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Thing returns a valid, unsaved thing.
func Thing(opts ...func(*models.Thing)) *models.Thing {
	t := &models.Thing{Name: "widget"}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
