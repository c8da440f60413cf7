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

// User-facing review messages.
const (
	msgReviewCreated       = "Sharh muvaffaqiyatli qo'shildi!"
	msgReviewUpdated       = "Sharh muvaffaqiyatli yangilandi!"
	msgReviewNotFound      = "Sharh topilmadi!"
	msgReviewFoundFmt      = "Sharh (ID: %s) topildi!"
	msgReviewNotFoundByFmt = "«%s» ID li sharh topilmadi!"
)

// ReviewHandler handles review CRUD requests.
type ReviewHandler struct {
	reviewStore store.ReviewStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewStore store.ReviewStore, log *slog.Logger) *ReviewHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReviewHandler{
		reviewStore: reviewStore,
		validator:   newValidator(),
		logger:      log.With(slog.String("component", "review_handler")),
	}
}

// Create handles POST /reviews/create/ requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	fieldErrors := map[string][]string{}
	if req.Book == nil {
		fieldErrors["book"] = append(fieldErrors["book"], requiredFieldMessage)
	}
	if req.ReviewerName == nil {
		fieldErrors["reviewer_name"] = append(fieldErrors["reviewer_name"], requiredFieldMessage)
	}
	if req.Rating == nil {
		fieldErrors["rating"] = append(fieldErrors["rating"], requiredFieldMessage)
	}
	if len(fieldErrors) > 0 {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, fieldErrors)
		return
	}

	review, err := domain.NewReview(*req.Book, *req.ReviewerName, *req.Rating, req.Comment)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.reviewStore.Create(r.Context(), review); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Refetch so the response carries the book_title expansion.
	created, err := h.reviewStore.GetByID(r.Context(), review.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, msgReviewCreated, created)
}

// Detail handles GET /reviews/{id}/ requests.
func (h *ReviewHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf(msgReviewNotFoundByFmt, chi.URLParam(r, "id")))
		return
	}

	review, err := h.reviewStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf(msgReviewNotFoundByFmt, id))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, fmt.Sprintf(msgReviewFoundFmt, id), review)
}

// List handles GET /reviews/ requests. The full set is returned newest-first
// as a bare array.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	reviews, err := h.reviewStore.List(r.Context())
	if err != nil {
		log.Error("failed to list reviews", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// Update handles PUT and PATCH /reviews/{id}/update/ requests. CreatedAt is
// never touched.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgReviewNotFound)
		return
	}

	review, err := h.reviewStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, msgReviewNotFound)
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Book != nil {
		review.BookID = *req.Book
	}
	if req.ReviewerName != nil {
		review.ReviewerName = *req.ReviewerName
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := h.reviewStore.Update(r.Context(), review); err != nil {
		HandleAPIError(w, r, err, msgReviewNotFound)
		return
	}

	updated, err := h.reviewStore.GetByID(r.Context(), review.ID)
	if err != nil {
		HandleAPIError(w, r, err, msgReviewNotFound)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, msgReviewUpdated, updated)
}

// Delete handles DELETE /reviews/{id}/delete/ requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, msgReviewNotFound)
		return
	}

	if err := h.reviewStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, msgReviewNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
