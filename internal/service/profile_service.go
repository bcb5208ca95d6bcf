package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentorhub-api/internal/models"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

type profileMentorRepository interface {
	FindByIDWithTags(ctx context.Context, id string) (*models.Mentor, error)
}

type profileSessionRepository interface {
	ListUpcomingByMentor(ctx context.Context, mentorID string, after time.Time) ([]models.LiveSession, error)
}

// ProfileService assembles the public mentor view served to students: the
// scalar profile fields, expertise tags, intro video and upcoming sessions.
// The legacy endpoint for this was non-functional (it read the id off the
// wrong object and tried to include scalar columns as relations); this is
// its intended behavior.
type ProfileService struct {
	mentors  profileMentorRepository
	sessions profileSessionRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewProfileService constructs a ProfileService.
func NewProfileService(mentors profileMentorRepository, sessions profileSessionRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{mentors: mentors, sessions: sessions, logger: logger, now: time.Now}
}

// PublicProfile returns the mentor's public profile.
func (s *ProfileService) PublicProfile(ctx context.Context, mentorID string) (*models.MentorProfile, error) {
	mentor, err := s.mentors.FindByIDWithTags(ctx, mentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}

	sessions, err := s.sessions.ListUpcomingByMentor(ctx, mentorID, s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}

	return &models.MentorProfile{
		ID:         mentor.ID,
		Name:       mentor.Name,
		Email:      mentor.Email,
		Bio:        mentor.Bio,
		IntroVideo: mentor.IntroVideo,
		SebiID:     mentor.SebiID,
		Expertises: mentor.Expertises,
		Sessions:   sessions,
	}, nil
}
