// package repositories implements data access over the SQLite store
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// MovieRepository provides CRUD access to the movies table.
//
// Every method is a single statement, so each handler's conceptual
// transaction is the statement itself.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new [models.Movie] and assigns its generated identifier.
//
// A title already present in the collection yields [shared.ErrDuplicateTitle].
func (r *MovieRepository) Create(movie *models.Movie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO movies (title, year, description, rating, ranking, review, img_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		movie.Title,
		movie.Year,
		movie.Description,
		movie.Rating,
		movie.Ranking,
		movie.Review,
		movie.ImgURL,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", shared.ErrDuplicateTitle, movie.Title)
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated id: %w", err)
	}
	movie.ID = id

	return nil
}

// Get retrieves a movie by its identifier.
func (r *MovieRepository) Get(id int64) (*models.Movie, error) {
	query := `
		SELECT id, title, year, description, rating, ranking, review, img_url, created_at, updated_at
		FROM movies
		WHERE id = ?
	`

	movie, err := scanMovie(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return movie, nil
}

// List retrieves every movie ordered by rating descending.
//
// SQLite sorts NULL ratings after all rated entries under DESC, so unrated
// movies appear at the bottom of the listing.
func (r *MovieRepository) List() ([]*models.Movie, error) {
	query := `
		SELECT id, title, year, description, rating, ranking, review, img_url, created_at, updated_at
		FROM movies
		ORDER BY rating DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// UpdateReviewFields writes a new rating and, when review is non-nil, a new
// review for the movie. All other columns are immutable after creation.
//
// Passing a nil review leaves the stored review untouched, which is how the
// edit form treats an empty review field.
func (r *MovieRepository) UpdateReviewFields(id int64, rating float64, review *string) error {
	var (
		result sql.Result
		err    error
	)

	now := time.Now()
	if review != nil {
		result, err = r.db.Exec(
			`UPDATE movies SET rating = ?, review = ?, updated_at = ? WHERE id = ?`,
			rating, *review, now, id,
		)
	} else {
		result, err = r.db.Exec(
			`UPDATE movies SET rating = ?, updated_at = ? WHERE id = ?`,
			rating, now, id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
	}

	return nil
}

// Delete removes a movie by identifier.
//
// Deleting an identifier that does not resolve yields
// [shared.ErrMovieNotFound], never a silent no-op.
func (r *MovieRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
	}

	return nil
}

// scanner covers both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	var (
		movie     models.Movie
		rating    sql.NullFloat64
		ranking   sql.NullInt64
		review    sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Description,
		&rating,
		&ranking,
		&review,
		&movie.ImgURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		movie.Rating = &rating.Float64
	}
	if ranking.Valid {
		movie.Ranking = &ranking.Int64
	}
	if review.Valid {
		movie.Review = &review.String
	}
	movie.CreatedAt = createdAt
	movie.UpdatedAt = updatedAt

	return &movie, nil
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
