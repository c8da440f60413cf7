package api

import (
	"errors"
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

// User-facing genre messages.
const (
	msgGenreCreated       = "Janr muvaffaqiyatli yaratildi!"
	msgGenreUpdated       = "Janr muvaffaqiyatli yangilandi!"
	msgGenreNotFound      = "Janr topilmadi!"
	msgGenreFoundFmt      = "«%s» (ID: %s) topildi!"
	msgGenreNotFoundByFmt = "«%s» ID li janr topilmadi!"
	msgGenreNameTaken     = "genre with this name already exists."
)

// GenreHandler handles genre CRUD requests.
type GenreHandler struct {
	genreStore store.GenreStore
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(genreStore store.GenreStore, log *slog.Logger) *GenreHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GenreHandler{
		genreStore: genreStore,
		validator:  newValidator(),
		logger:     log.With(slog.String("component", "genre_handler")),
	}
}

// Create handles POST /genres/create/ requests.
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if req.Name == nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
			map[string][]string{"name": {requiredFieldMessage}})
		return
	}

	genre, err := domain.NewGenre(*req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.genreStore.Create(r.Context(), genre); err != nil {
		if errors.Is(err, store.ErrGenreNameExists) {
			shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
				map[string][]string{"name": {msgGenreNameTaken}})
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, msgGenreCreated, genre)
}

// Detail handles GET /genres/{id}/ requests.
func (h *GenreHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf(msgGenreNotFoundByFmt, chi.URLParam(r, "id")))
		return
	}

	genre, err := h.genreStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf(msgGenreNotFoundByFmt, id))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK,
		fmt.Sprintf(msgGenreFoundFmt, genre.Name, id), genre)
}

// List handles GET /genres/ requests. The full set is returned unpaginated
// as a bare array.
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	genres, err := h.genreStore.List(r.Context())
	if err != nil {
		log.Error("failed to list genres", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, genres)
}

// Update handles PUT and PATCH /genres/{id}/update/ requests.
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgGenreNotFound)
		return
	}

	genre, err := h.genreStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgGenreNotFound)
		return
	}

	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Name != nil {
		genre.Name = *req.Name
	}

	if err := h.genreStore.Update(r.Context(), genre); err != nil {
		if errors.Is(err, store.ErrGenreNameExists) {
			shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
				map[string][]string{"name": {msgGenreNameTaken}})
			return
		}
		HandleAPIError(w, r, err, msgGenreNotFound)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, msgGenreUpdated, genre)
}

// Delete handles DELETE /genres/{id}/delete/ requests. Book links to the
// genre are removed; the books themselves stay.
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgGenreNotFound)
		return
	}

	if err := h.genreStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgGenreNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
