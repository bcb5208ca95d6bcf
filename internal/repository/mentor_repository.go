package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentorhub-api/internal/models"
)

// MentorRepository manages persistence for mentor accounts and their
// expertise associations.
type MentorRepository struct {
	db *sqlx.DB
}

// NewMentorRepository constructs a MentorRepository.
func NewMentorRepository(db *sqlx.DB) *MentorRepository {
	return &MentorRepository{db: db}
}

const mentorColumns = "id, name, email, password_hash, bio, intro_video, sebi_id, created_at, updated_at"

// FindByID fetches a mentor by ID without expertise tags.
func (r *MentorRepository) FindByID(ctx context.Context, id string) (*models.Mentor, error) {
	query := fmt.Sprintf("SELECT %s FROM mentors WHERE id = $1", mentorColumns)
	var mentor models.Mentor
	if err := r.db.GetContext(ctx, &mentor, query, id); err != nil {
		return nil, err
	}
	return &mentor, nil
}

// FindByIDWithTags fetches a mentor by ID including expertise tags.
func (r *MentorRepository) FindByIDWithTags(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, []*models.Mentor{mentor}); err != nil {
		return nil, err
	}
	return mentor, nil
}

// FindByEmail fetches a mentor by email.
func (r *MentorRepository) FindByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	query := fmt.Sprintf("SELECT %s FROM mentors WHERE LOWER(email) = LOWER($1)", mentorColumns)
	var mentor models.Mentor
	if err := r.db.GetContext(ctx, &mentor, query, email); err != nil {
		return nil, err
	}
	return &mentor, nil
}

// ExistsByEmail checks whether a mentor already uses the email.
func (r *MentorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM mentors WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check mentor email: %w", err)
	}
	return true, nil
}

// Create inserts a new mentor record.
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	if mentor.ID == "" {
		mentor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mentor.CreatedAt.IsZero() {
		mentor.CreatedAt = now
	}
	mentor.UpdatedAt = now

	const query = `INSERT INTO mentors (id, name, email, password_hash, bio, intro_video, sebi_id, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :bio, :intro_video, :sebi_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mentor); err != nil {
		return fmt.Errorf("create mentor: %w", err)
	}
	return nil
}

// UpdateProfile sets bio and sebi_id and replaces the expertise association
// set wholesale. The clear and the reconnect run in one transaction so a
// crash cannot leave a mentor with zero tags.
func (r *MentorRepository) UpdateProfile(ctx context.Context, mentorID, bio, sebiID string, tagIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin profile update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const update = `UPDATE mentors SET bio = $2, sebi_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, mentorID, bio, sebiID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update mentor profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM mentor_expertise WHERE mentor_id = $1`, mentorID); err != nil {
		return fmt.Errorf("clear mentor expertise: %w", err)
	}

	const connect = `INSERT INTO mentor_expertise (mentor_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, connect, mentorID, tagID); err != nil {
			return fmt.Errorf("connect mentor expertise: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile update: %w", err)
	}
	return nil
}

// ListOnboarded returns mentors with both bio and sebi_id set, tags included.
func (r *MentorRepository) ListOnboarded(ctx context.Context) ([]models.Mentor, error) {
	query := fmt.Sprintf("SELECT %s FROM mentors WHERE bio IS NOT NULL AND sebi_id IS NOT NULL ORDER BY created_at DESC", mentorColumns)
	var mentors []models.Mentor
	if err := r.db.SelectContext(ctx, &mentors, query); err != nil {
		return nil, fmt.Errorf("list onboarded mentors: %w", err)
	}
	if err := r.attachTagsToSlice(ctx, mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

// ListOnboardedByTags returns onboarded mentors whose expertise set
// intersects the given tag names. OR semantics: one matching tag suffices.
func (r *MentorRepository) ListOnboardedByTags(ctx context.Context, tags []string) ([]models.Mentor, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT DISTINCT m.id, m.name, m.email, m.password_hash, m.bio, m.intro_video, m.sebi_id, m.created_at, m.updated_at
		FROM mentors m
		JOIN mentor_expertise me ON me.mentor_id = m.id
		JOIN expertise_tags t ON t.id = me.tag_id
		WHERE m.bio IS NOT NULL AND m.sebi_id IS NOT NULL AND t.name IN (?)`, tags)
	if err != nil {
		return nil, fmt.Errorf("build tag filter: %w", err)
	}

	var mentors []models.Mentor
	if err := r.db.SelectContext(ctx, &mentors, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list mentors by tags: %w", err)
	}
	if err := r.attachTagsToSlice(ctx, mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

type mentorTagRow struct {
	MentorID string `db:"mentor_id"`
	ID       string `db:"id"`
	Name     string `db:"name"`
}

func (r *MentorRepository) attachTagsToSlice(ctx context.Context, mentors []models.Mentor) error {
	refs := make([]*models.Mentor, len(mentors))
	for i := range mentors {
		refs[i] = &mentors[i]
	}
	return r.attachTags(ctx, refs)
}

func (r *MentorRepository) attachTags(ctx context.Context, mentors []*models.Mentor) error {
	if len(mentors) == 0 {
		return nil
	}

	ids := make([]string, 0, len(mentors))
	byID := make(map[string]*models.Mentor, len(mentors))
	for _, m := range mentors {
		m.Expertises = []models.ExpertiseTag{}
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}

	query, args, err := sqlx.In(`SELECT me.mentor_id, t.id, t.name FROM mentor_expertise me
		JOIN expertise_tags t ON t.id = me.tag_id
		WHERE me.mentor_id IN (?) ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("build tag load: %w", err)
	}

	var rows []mentorTagRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load mentor tags: %w", err)
	}

	for _, row := range rows {
		if m, ok := byID[row.MentorID]; ok {
			m.Expertises = append(m.Expertises, models.ExpertiseTag{ID: row.ID, Name: row.Name})
		}
	}
	return nil
}
