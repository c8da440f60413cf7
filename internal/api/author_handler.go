package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/javohir-a/kutubxona/internal/api/shared"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/store"
)

// User-facing author messages.
const (
	msgAuthorCreated       = "Muallif muvaffaqiyatli yaratildi!"
	msgAuthorUpdated       = "Muallif muvaffaqiyatli yangilandi!"
	msgAuthorNotFound      = "Muallif topilmadi!"
	msgAuthorFoundFmt      = "Muallif (ID: %s) topildi!"
	msgAuthorNotFoundByFmt = "«%s» ID li muallif topilmadi!"
)

// AuthorHandler handles author CRUD requests.
type AuthorHandler struct {
	authorStore store.AuthorStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(authorStore store.AuthorStore, log *slog.Logger) *AuthorHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthorHandler{
		authorStore: authorStore,
		validator:   newValidator(),
		logger:      log.With(slog.String("component", "author_handler")),
	}
}

// Create handles POST /authors/create/ requests.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if req.LastName == nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
			map[string][]string{"last_name": {requiredFieldMessage}})
		return
	}

	author, err := domain.NewAuthor(
		stringOrEmpty(req.FirstName),
		*req.LastName,
		req.Bio,
		req.BirthDate,
		req.DeathDate,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.authorStore.Create(r.Context(), author); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, msgAuthorCreated, author)
}

// Detail handles GET /authors/{id}/ requests.
func (h *AuthorHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf(msgAuthorNotFoundByFmt, chi.URLParam(r, "id")))
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf(msgAuthorNotFoundByFmt, id))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, fmt.Sprintf(msgAuthorFoundFmt, id), author)
}

// List handles GET /authors/ requests with page-based pagination.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := getPageParam(r)
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}

	count, err := h.authorStore.Count(r.Context())
	if err != nil {
		log.Error("failed to count authors", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	authors, err := h.authorStore.List(r.Context(), (page-1)*defaultPageSize, defaultPageSize)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	resp, err := paginate(r, count, page, authors)
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Update handles PUT and PATCH /authors/{id}/update/ requests. Absent fields
// keep their stored values.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgAuthorNotFound)
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgAuthorNotFound)
		return
	}

	var req AuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.FirstName != nil {
		author.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		author.LastName = *req.LastName
	}
	if req.Bio != nil {
		author.Bio = req.Bio
	}
	if req.BirthDate != nil {
		author.BirthDate = req.BirthDate
	}
	if req.DeathDate != nil {
		author.DeathDate = req.DeathDate
	}

	if err := h.authorStore.Update(r.Context(), author); err != nil {
		HandleAPIError(w, r, err, msgAuthorNotFound)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, msgAuthorUpdated, author)
}

// Delete handles DELETE /authors/{id}/delete/ requests. The author's books
// and their reviews are removed transitively.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgAuthorNotFound)
		return
	}

	if err := h.authorStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgAuthorNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// stringOrEmpty unwraps an optional string field.
func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
