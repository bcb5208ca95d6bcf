package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

// ExpertiseRepository manages the expertise tag dictionary.
type ExpertiseRepository struct {
	db *sqlx.DB
}

// NewExpertiseRepository constructs an ExpertiseRepository.
func NewExpertiseRepository(db *sqlx.DB) *ExpertiseRepository {
	return &ExpertiseRepository{db: db}
}

// FindOrCreate returns the tag with the given name, creating it when absent.
// The unique name constraint makes repeated profile upserts idempotent.
func (r *ExpertiseRepository) FindOrCreate(ctx context.Context, name string) (*models.ExpertiseTag, error) {
	const query = `INSERT INTO expertise_tags (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`
	var tag models.ExpertiseTag
	if err := r.db.GetContext(ctx, &tag, query, uuid.NewString(), name); err != nil {
		return nil, fmt.Errorf("find or create tag %q: %w", name, err)
	}
	return &tag, nil
}

// List returns every known tag, sorted by name.
func (r *ExpertiseRepository) List(ctx context.Context) ([]models.ExpertiseTag, error) {
	const query = `SELECT id, name FROM expertise_tags ORDER BY name`
	var tags []models.ExpertiseTag
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
