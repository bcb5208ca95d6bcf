package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mentorhub-api/internal/models"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

const directoryCacheKey = "mentors:directory"

type mentorRepository interface {
	FindByIDWithTags(ctx context.Context, id string) (*models.Mentor, error)
	UpdateProfile(ctx context.Context, mentorID, bio, sebiID string, tagIDs []string) error
	ListOnboarded(ctx context.Context) ([]models.Mentor, error)
	ListOnboardedByTags(ctx context.Context, tags []string) ([]models.Mentor, error)
}

type expertiseRepository interface {
	FindOrCreate(ctx context.Context, name string) (*models.ExpertiseTag, error)
	List(ctx context.Context) ([]models.ExpertiseTag, error)
}

type directoryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ProfileRequest is the payload for the mentor profile upsert.
type ProfileRequest struct {
	Bio           string   `json:"bio" validate:"required"`
	ExpertiseTags []string `json:"expertise_tags" validate:"required,min=1,dive,required"`
	SebiID        string   `json:"sebi_id" validate:"required"`
}

// MentorService orchestrates mentor profile and directory operations.
type MentorService struct {
	repo      mentorRepository
	tags      expertiseRepository
	cache     directoryCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMentorService constructs a MentorService.
func NewMentorService(repo mentorRepository, tags expertiseRepository, cache directoryCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *MentorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MentorService{repo: repo, tags: tags, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// UpsertProfile sets the mentor's bio and SEBI id and replaces the
// expertise tag set. Tags are find-or-created by unique name, so repeated
// calls with the same list are idempotent.
func (s *MentorService) UpsertProfile(ctx context.Context, mentorID string, req ProfileRequest) (*models.Mentor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	tagIDs := make([]string, 0, len(req.ExpertiseTags))
	seen := make(map[string]struct{}, len(req.ExpertiseTags))
	for _, raw := range req.ExpertiseTags {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.FindOrCreate(ctx, name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve expertise tag")
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if len(tagIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one expertise tag is required")
	}

	if err := s.repo.UpdateProfile(ctx, mentorID, strings.TrimSpace(req.Bio), strings.TrimSpace(req.SebiID), tagIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, directoryCacheKey); err != nil {
			s.logger.Warn("failed to invalidate mentor directory cache", zap.Error(err))
		}
	}

	mentor, err := s.repo.FindByIDWithTags(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload mentor")
	}
	return mentor, nil
}

// Directory returns every onboarded mentor with tags. The second return
// value reports whether the response came from cache.
func (s *MentorService) Directory(ctx context.Context) ([]models.Mentor, bool, error) {
	if s.cache != nil {
		var cached []models.Mentor
		if err := s.cache.Get(ctx, directoryCacheKey, &cached); err == nil {
			return cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("mentor directory cache read failed", zap.Error(err))
		}
	}

	mentors, err := s.repo.ListOnboarded(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, directoryCacheKey, mentors, s.cacheTTL); err != nil {
			s.logger.Warn("mentor directory cache write failed", zap.Error(err))
		}
	}

	return mentors, false, nil
}

// FilterByTags returns onboarded mentors whose tag set intersects the
// comma-separated list. One matching tag suffices.
func (s *MentorService) FilterByTags(ctx context.Context, rawTags string) ([]models.Mentor, error) {
	var tags []string
	for _, part := range strings.Split(rawTags, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no tags provided")
	}

	mentors, err := s.repo.ListOnboardedByTags(ctx, tags)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to filter mentors")
	}
	return mentors, nil
}

// Tags returns every known expertise tag for the profile form.
func (s *MentorService) Tags(ctx context.Context) ([]models.ExpertiseTag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list expertise tags")
	}
	return tags, nil
}

// Get returns one mentor with tags.
func (s *MentorService) Get(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := s.repo.FindByIDWithTags(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}
	return mentor, nil
}
