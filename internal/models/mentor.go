package models

import "time"

// Mentor represents a mentor account and profile. A mentor is "onboarded"
// once both Bio and SebiID are set; only onboarded mentors appear in the
// public directory.
type Mentor struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	IntroVideo   *string   `db:"intro_video" json:"intro_video,omitempty"`
	SebiID       *string   `db:"sebi_id" json:"sebi_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	Expertises []ExpertiseTag `db:"-" json:"expertises"`
}

// Onboarded reports whether the mentor completed the profile step.
func (m *Mentor) Onboarded() bool {
	return m != nil && m.Bio != nil && m.SebiID != nil
}

// ExpertiseTag is a named category a mentor can be associated with.
type ExpertiseTag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// MentorProfile is the public view of a mentor served to students.
type MentorProfile struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Bio        *string        `json:"bio,omitempty"`
	IntroVideo *string        `json:"intro_video,omitempty"`
	SebiID     *string        `json:"sebi_id,omitempty"`
	Expertises []ExpertiseTag `json:"expertises"`
	Sessions   []LiveSession  `json:"sessions"`
}
