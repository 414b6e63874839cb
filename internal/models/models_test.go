package models

import (
	"strings"
	"testing"
)

func TestMovie(t *testing.T) {
	t.Run("NewMovie", func(t *testing.T) {
		movie := NewMovie("Dune", 2021, "Sand.", "https://img.example/abc.jpg")

		if movie.Rating != nil || movie.Review != nil || movie.Ranking != nil {
			t.Error("new movies should have rating, review and ranking unset")
		}
		if movie.CreatedAt.IsZero() || movie.UpdatedAt.IsZero() {
			t.Error("timestamps should be set")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		valid := func() *Movie { return NewMovie("Dune", 2021, "Sand.", "https://img.example/abc.jpg") }

		if err := valid().Validate(); err != nil {
			t.Errorf("expected valid movie, got %v", err)
		}

		cases := map[string]func(*Movie){
			"Blank Title":       func(m *Movie) { m.Title = " " },
			"Missing Year":      func(m *Movie) { m.Year = 0 },
			"Blank Description": func(m *Movie) { m.Description = "" },
			"Blank Poster":      func(m *Movie) { m.ImgURL = "" },
			"Rating Too High":   func(m *Movie) { r := 10.5; m.Rating = &r },
			"Rating Negative":   func(m *Movie) { r := -0.5; m.Rating = &r },
			"Review Too Long":   func(m *Movie) { s := strings.Repeat("x", MaxReviewLength+1); m.Review = &s },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				movie := valid()
				mutate(movie)
				if err := movie.Validate(); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})

	t.Run("RatingString", func(t *testing.T) {
		movie := NewMovie("Dune", 2021, "Sand.", "https://img.example/abc.jpg")

		if movie.RatingString() != "unrated" {
			t.Errorf("expected unrated, got %s", movie.RatingString())
		}

		rating := 8.5
		movie.Rating = &rating
		if movie.RatingString() != "8.5" {
			t.Errorf("expected 8.5, got %s", movie.RatingString())
		}
	})
}
