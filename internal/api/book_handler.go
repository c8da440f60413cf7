package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/api/shared"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/store"
)

// User-facing book messages.
const (
	msgBookCreated       = "Kitob muvaffaqiyatli qo'shildi!"
	msgBookUpdated       = "Kitob muvaffaqiyatli yangilandi!"
	msgBookNotFound      = "Kitob topilmadi!"
	msgBookFoundFmt      = "«%s» kitobi topildi!"
	msgBookNotFoundByFmt = "«%s» ID li kitob topilmadi!"

	// msgAuthorHasBook is the field error for the one-book-per-author rule.
	msgAuthorHasBook = "Bu muallif (Author) allaqachon bitta kitob yozgan. Har bir muallif faqat bitta kitob yarata oladi."
	msgISBNTaken     = "book with this isbn already exists."
)

// BookHandler handles book CRUD requests.
type BookHandler struct {
	bookStore store.BookStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookStore store.BookStore, log *slog.Logger) *BookHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BookHandler{
		bookStore: bookStore,
		validator: newValidator(),
		logger:    log.With(slog.String("component", "book_handler")),
	}
}

// Create handles POST /books/create/ requests.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	fieldErrors := map[string][]string{}
	if req.Title == nil {
		fieldErrors["title"] = append(fieldErrors["title"], requiredFieldMessage)
	}
	if req.Author == nil {
		fieldErrors["author"] = append(fieldErrors["author"], requiredFieldMessage)
	}
	if len(fieldErrors) > 0 {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, fieldErrors)
		return
	}

	if !h.checkAuthorFree(w, r, *req.Author, uuid.Nil) {
		return
	}

	book, err := domain.NewBook(
		*req.Title,
		*req.Author,
		req.Publisher,
		genreIDsOrEmpty(req.Genres),
		req.PublishedDate,
		req.ISBN,
		req.Pages,
		req.Description,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.bookStore.Create(r.Context(), book); err != nil {
		h.respondWriteError(w, r, err)
		return
	}

	// Refetch so the response carries the author/publisher/genre expansions.
	created, err := h.bookStore.GetByID(r.Context(), book.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, msgBookCreated, created)
}

// Detail handles GET /books/{id}/ requests.
func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf(msgBookNotFoundByFmt, chi.URLParam(r, "id")))
		return
	}

	book, err := h.bookStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf(msgBookNotFoundByFmt, id))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, fmt.Sprintf(msgBookFoundFmt, book.Title), book)
}

// List handles GET /books/ requests with page-based pagination.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := getPageParam(r)
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}

	count, err := h.bookStore.Count(r.Context())
	if err != nil {
		log.Error("failed to count books", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	books, err := h.bookStore.List(r.Context(), (page-1)*defaultPageSize, defaultPageSize)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	resp, err := paginate(r, count, page, books)
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Update handles PUT and PATCH /books/{id}/update/ requests. Absent fields
// keep their stored values; the one-book-per-author rule is re-checked when
// the author reference changes.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgBookNotFound)
		return
	}

	book, err := h.bookStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgBookNotFound)
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Author != nil && !h.checkAuthorFree(w, r, *req.Author, book.ID) {
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.AuthorID = *req.Author
	}
	if req.Publisher != nil {
		book.PublisherID = req.Publisher
	}
	if req.Genres != nil {
		book.GenreIDs = *req.Genres
	}
	if req.PublishedDate != nil {
		book.PublishedDate = req.PublishedDate
	}
	if req.ISBN != nil {
		book.ISBN = req.ISBN
	}
	if req.Pages != nil {
		book.Pages = req.Pages
	}
	if req.Description != nil {
		book.Description = req.Description
	}

	if err := h.bookStore.Update(r.Context(), book); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, msgBookNotFound)
			return
		}
		h.respondWriteError(w, r, err)
		return
	}

	updated, err := h.bookStore.GetByID(r.Context(), book.ID)
	if err != nil {
		HandleAPIError(w, r, err, msgBookNotFound)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, msgBookUpdated, updated)
}

// Delete handles DELETE /books/{id}/delete/ requests. The book's reviews are
// removed with it.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgBookNotFound)
		return
	}

	if err := h.bookStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgBookNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkAuthorFree enforces the one-book-per-author rule before a write. It
// writes the field error itself and reports whether the write may proceed.
func (h *BookHandler) checkAuthorFree(w http.ResponseWriter, r *http.Request, authorID, excludeBookID uuid.UUID) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taken, err := h.bookStore.AuthorHasBook(r.Context(), authorID, excludeBookID)
	if err != nil {
		log.Error("failed to check author book ownership", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return false
	}
	if taken {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
			map[string][]string{"author": {msgAuthorHasBook}})
		return false
	}
	return true
}

// respondWriteError maps store write failures onto field errors where the
// rule is field-scoped.
func (h *BookHandler) respondWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrAuthorHasBook):
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
			map[string][]string{"author": {msgAuthorHasBook}})
	case errors.Is(err, store.ErrISBNExists):
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
			map[string][]string{"isbn": {msgISBNTaken}})
	default:
		HandleAPIError(w, r, err, "")
	}
}

func genreIDsOrEmpty(ids *[]uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return *ids
}
