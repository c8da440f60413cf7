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

// User-facing publisher messages.
const (
	msgPublisherCreated       = "Nashriyot muvaffaqiyatli yaratildi!"
	msgPublisherUpdated       = "Nashriyot muvaffaqiyatli yangilandi!"
	msgPublisherNotFound      = "Nashriyot topilmadi!"
	msgPublisherFoundFmt      = "«%s» (ID: %s) topildi!"
	msgPublisherNotFoundByFmt = "«%s» ID li nashriyot topilmadi!"
)

// PublisherHandler handles publisher CRUD requests.
type PublisherHandler struct {
	publisherStore store.PublisherStore
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewPublisherHandler creates a new PublisherHandler.
func NewPublisherHandler(publisherStore store.PublisherStore, log *slog.Logger) *PublisherHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PublisherHandler{
		publisherStore: publisherStore,
		validator:      newValidator(),
		logger:         log.With(slog.String("component", "publisher_handler")),
	}
}

// Create handles POST /publishers/create/ requests.
func (h *PublisherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PublisherRequest
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

	publisher, err := domain.NewPublisher(*req.Name, req.Address, req.Website)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.publisherStore.Create(r.Context(), publisher); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, msgPublisherCreated, publisher)
}

// Detail handles GET /publishers/{id}/ requests.
func (h *PublisherHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf(msgPublisherNotFoundByFmt, chi.URLParam(r, "id")))
		return
	}

	publisher, err := h.publisherStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf(msgPublisherNotFoundByFmt, id))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK,
		fmt.Sprintf(msgPublisherFoundFmt, publisher.Name, id), publisher)
}

// List handles GET /publishers/ requests. The full set is returned
// unpaginated as a bare array.
func (h *PublisherHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	publishers, err := h.publisherStore.List(r.Context())
	if err != nil {
		log.Error("failed to list publishers", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, publishers)
}

// Update handles PUT and PATCH /publishers/{id}/update/ requests.
func (h *PublisherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgPublisherNotFound)
		return
	}

	publisher, err := h.publisherStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgPublisherNotFound)
		return
	}

	var req PublisherRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Name != nil {
		publisher.Name = *req.Name
	}
	if req.Address != nil {
		publisher.Address = req.Address
	}
	if req.Website != nil {
		publisher.Website = req.Website
	}

	if err := h.publisherStore.Update(r.Context(), publisher); err != nil {
		HandleAPIError(w, r, err, msgPublisherNotFound)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, msgPublisherUpdated, publisher)
}

// Delete handles DELETE /publishers/{id}/delete/ requests. Books referencing
// the publisher keep existing with the reference cleared.
func (h *PublisherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgPublisherNotFound)
		return
	}

	if err := h.publisherStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgPublisherNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
