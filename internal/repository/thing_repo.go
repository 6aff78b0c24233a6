package repository

import (
	"context"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/models"
)

// ThingRepository handles the things table used by the scaffold controller.
type ThingRepository struct{}

// NewThingRepository creates a new instance of ThingRepository.
func NewThingRepository() *ThingRepository {
	return &ThingRepository{}
}

// ListAll retrieves all things, newest first.
func (r *ThingRepository) ListAll(ctx context.Context) ([]models.Thing, error) {
	rows, err := database.DB.Query(ctx, `SELECT id, name, created_at, updated_at FROM things ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperr.Classify("things.list", err)
	}
	defer rows.Close()

	var things []models.Thing
	for rows.Next() {
		var t models.Thing
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, apperr.Classify("things.list", err)
		}
		things = append(things, t)
	}

	return things, apperr.Classify("things.list", rows.Err())
}

// FindByID retrieves a thing by primary key.
func (r *ThingRepository) FindByID(ctx context.Context, id int) (*models.Thing, error) {
	var t models.Thing
	err := database.DB.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM things WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, apperr.Classify("things.find", err)
	}
	return &t, nil
}

// Count returns the number of stored things.
func (r *ThingRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM things`).Scan(&n)
	return n, apperr.Classify("things.count", err)
}

// Create inserts a new thing.
//
// Side Effects: Populates thing.ID, CreatedAt and UpdatedAt
func (r *ThingRepository) Create(ctx context.Context, t *models.Thing) error {
	err := database.DB.QueryRow(ctx, `INSERT INTO things (name) VALUES ($1) RETURNING id, created_at, updated_at`, t.Name).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return apperr.Classify("things.create", err)
}

// Delete removes a thing.
func (r *ThingRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM things WHERE id = $1`, id)
	if err != nil {
		return apperr.Classify("things.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("things.delete", nil)
	}
	return nil
}
