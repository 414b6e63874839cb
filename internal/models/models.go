// package models defines the data model for the movie collection service
package models

import (
	"fmt"
	"strings"
	"time"
)

// MaxReviewLength bounds the free-text review field.
const MaxReviewLength = 75

// Movie is a single entry in the collection.
//
// Title, year, description and poster URL are copied from the external
// catalog when the entry is created and never change afterwards. Rating and
// review are supplied by the user through the edit form. Ranking is persisted
// but currently never computed or displayed.
type Movie struct {
	ID          int64
	Title       string
	Year        int
	Description string
	Rating      *float64
	Ranking     *int64
	Review      *string
	ImgURL      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMovie constructs an unrated Movie from catalog detail data.
func NewMovie(title string, year int, description, imgURL string) *Movie {
	now := time.Now()
	return &Movie{
		Title:       title,
		Year:        year,
		Description: description,
		ImgURL:      imgURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the fields that storage cannot express as constraints.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if m.Year <= 0 {
		return fmt.Errorf("year is required")
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(m.ImgURL) == "" {
		return fmt.Errorf("poster URL is required")
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		return fmt.Errorf("rating must be between 0 and 10")
	}
	if m.Review != nil && len(*m.Review) > MaxReviewLength {
		return fmt.Errorf("review must be at most %d characters", MaxReviewLength)
	}
	return nil
}

// HasRating reports whether the user has rated this movie yet.
func (m *Movie) HasRating() bool {
	return m.Rating != nil
}

// RatingString formats the rating for display.
func (m *Movie) RatingString() string {
	if m.Rating == nil {
		return "unrated"
	}
	return fmt.Sprintf("%.1f", *m.Rating)
}

// ReviewString returns the review text or the empty string when unset.
func (m *Movie) ReviewString() string {
	if m.Review == nil {
		return ""
	}
	return *m.Review
}
