package models

import "time"

// LiveSession is a scheduled broadcast event owned by a mentor, distinct
// from a one-to-one booking. Nothing flips IsLive yet; the flag is stored
// for the player page.
type LiveSession struct {
	ID          string    `db:"id" json:"id"`
	MentorID    string    `db:"mentor_id" json:"mentor_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	StartTime   time.Time `db:"start_time" json:"startTime"`
	EndTime     time.Time `db:"end_time" json:"endTime"`
	IsLive      bool      `db:"is_live" json:"is_live"`
	VideoURL    *string   `db:"video_url" json:"video_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
