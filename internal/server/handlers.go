package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/repositories"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
)

// MovieHandler serves every page of the movie collection app.
//
// Implements the [Handler] interface. Each route accepts the methods the
// corresponding form uses and dispatches on the method itself.
type MovieHandler struct {
	repo      *repositories.MovieRepository
	catalog   services.Catalog
	views     *Views
	logger    *log.Logger
	imageBase string
}

// NewMovieHandler creates a MovieHandler with its dependencies injected.
func NewMovieHandler(repo *repositories.MovieRepository, catalog services.Catalog, views *Views, logger *log.Logger, imageBase string) *MovieHandler {
	return &MovieHandler{
		repo:      repo,
		catalog:   catalog,
		views:     views,
		logger:    logger,
		imageBase: imageBase,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *MovieHandler) Routes() []string {
	return []string{"/", "/edit", "/delete", "/add"}
}

// ServeHTTP dispatches to the page handlers.
//
// The "/" pattern also receives every unmatched path from the mux, so the
// default branch is the app's 404 page.
func (h *MovieHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		h.handleIndex(w, r)
	case "/edit":
		h.handleEdit(w, r)
	case "/delete":
		h.handleDelete(w, r)
	case "/add":
		h.handleAdd(w, r)
	default:
		h.renderError(w, http.StatusNotFound, "That page does not exist.")
	}
}

type indexData struct {
	Movies []*models.Movie
}

type editData struct {
	Movie  *models.Movie
	Rating string
	Review string
	Error  string
}

type addData struct {
	Title string
	Error string
}

type selectData struct {
	Query   string
	Results []services.SearchResult
}

type errorData struct {
	Status  int
	Message string
}

// handleIndex renders the collection ordered by rating descending.
func (h *MovieHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	movies, err := h.repo.List()
	if err != nil {
		h.logger.Error("failed to list movies", "error", err)
		h.renderError(w, http.StatusInternalServerError, "Could not load the collection.")
		return
	}

	h.render(w, http.StatusOK, "index", indexData{Movies: movies})
}

// handleEdit renders the rating/review form on GET and applies it on POST.
//
// Only rating and review are ever written; identifier, title, year,
// description and poster are immutable after creation.
func (h *MovieHandler) handleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := h.movieID(r)
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid movie id.")
		return
	}

	movie, err := h.repo.Get(id)
	if errors.Is(err, shared.ErrMovieNotFound) {
		h.renderError(w, http.StatusNotFound, "That movie is not in the collection.")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch movie", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Could not load the movie.")
		return
	}

	if r.Method == http.MethodGet {
		data := editData{Movie: movie, Review: movie.ReviewString()}
		if movie.HasRating() {
			data.Rating = movie.RatingString()
		}
		h.render(w, http.StatusOK, "edit", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	ratingField := strings.TrimSpace(r.PostFormValue("rating"))
	reviewField := strings.TrimSpace(r.PostFormValue("review"))

	rating, validationErr := validateRating(ratingField)
	if validationErr == "" && len(reviewField) > models.MaxReviewLength {
		validationErr = fmt.Sprintf("Review must be at most %d characters.", models.MaxReviewLength)
	}
	if validationErr != "" {
		data := editData{Movie: movie, Rating: ratingField, Review: reviewField, Error: validationErr}
		h.render(w, http.StatusUnprocessableEntity, "edit", data)
		return
	}

	// An empty review keeps whatever review is already stored.
	var review *string
	if reviewField != "" {
		review = &reviewField
	}

	if err := h.repo.UpdateReviewFields(id, rating, review); err != nil {
		if errors.Is(err, shared.ErrMovieNotFound) {
			h.renderError(w, http.StatusNotFound, "That movie is not in the collection.")
			return
		}
		h.logger.Error("failed to update movie", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Could not save your changes.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDelete removes a movie and returns to the listing.
//
// A second delete of the same identifier is a 404, not a silent success.
func (h *MovieHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := h.movieID(r)
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid movie id.")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, shared.ErrMovieNotFound) {
			h.renderError(w, http.StatusNotFound, "That movie is not in the collection.")
			return
		}
		h.logger.Error("failed to delete movie", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Could not delete the movie.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAdd runs the two-phase add flow.
//
// POST with a title searches the catalog and renders the selection view.
// GET with a catalog id creates the movie from catalog detail and redirects
// to the edit form so the user can rate it. GET without an id shows the form.
func (h *MovieHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSearch(w, r)
	case http.MethodGet:
		if r.URL.Query().Get("id") == "" {
			h.render(w, http.StatusOK, "add", addData{})
			return
		}
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSearch is phase one of the add flow: catalog search by title.
func (h *MovieHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		h.render(w, http.StatusUnprocessableEntity, "add", addData{Error: "Movie title is required."})
		return
	}

	results, err := h.catalog.Search(r.Context(), title)
	if err != nil {
		h.logger.Error("catalog search failed", "query", title, "error", err)
		h.renderError(w, http.StatusBadGateway, "The movie catalog is unavailable right now. Please try again.")
		return
	}

	h.render(w, http.StatusOK, "select", selectData{Query: title, Results: results})
}

// handleCreate is phase two of the add flow: detail lookup and insert.
func (h *MovieHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	catalogID, err := h.movieID(r)
	if err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid catalog id.")
		return
	}

	detail, err := h.catalog.Detail(r.Context(), catalogID)
	if err != nil {
		h.logger.Error("catalog detail failed", "catalog_id", catalogID, "error", err)
		h.renderError(w, http.StatusBadGateway, "The movie catalog is unavailable right now. Please try again.")
		return
	}

	year, err := detail.Year()
	if err != nil {
		h.logger.Error("catalog detail has invalid release date", "catalog_id", catalogID, "error", err)
		h.renderError(w, http.StatusBadGateway, "The movie catalog returned unusable data for this title.")
		return
	}

	movie := models.NewMovie(detail.Title, year, detail.Overview, detail.PosterURL(h.imageBase))
	if err := h.repo.Create(movie); err != nil {
		if errors.Is(err, shared.ErrDuplicateTitle) {
			h.renderError(w, http.StatusConflict, fmt.Sprintf("%q is already in your collection.", detail.Title))
			return
		}
		h.logger.Error("failed to create movie", "title", detail.Title, "error", err)
		h.renderError(w, http.StatusInternalServerError, "Could not add the movie.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/edit?id=%d", movie.ID), http.StatusSeeOther)
}

// movieID parses and validates the id query parameter as a typed identifier.
func (h *MovieHandler) movieID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", shared.ErrInvalidArgument, raw)
	}

	return id, nil
}

// validateRating checks the rating form field: required, numeric, within 0-10.
// Returns the parsed value and an empty message, or a user-facing message.
func validateRating(field string) (float64, string) {
	if field == "" {
		return 0, "Rating is required."
	}

	rating, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, "Rating must be a number."
	}
	if rating < 0 || rating > 10 {
		return 0, "Rating must be between 0 and 10."
	}

	return rating, ""
}

func (h *MovieHandler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.Error("failed to render view", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *MovieHandler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error", errorData{Status: status, Message: message})
}
