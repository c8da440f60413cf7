package api

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// defaultPageSize is the page size for the paginated list endpoints.
const defaultPageSize = 50

// errInvalidPage marks a page query parameter that is malformed or past the
// last page. List endpoints answer it with a 404.
var errInvalidPage = fmt.Errorf("invalid page: %w", domain.ErrValidation)

// newValidator builds a validator whose reported field names come from the
// json tags, so failures key the errors mapping the same way payloads are
// written.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, requiredFieldMessage, domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPageParam reads the ?page= query parameter, defaulting to 1.
func getPageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errInvalidPage
	}
	return page, nil
}

// paginate builds the page-based list shape around results. Page 1 is always
// valid even when empty; any later page past the data is invalid.
func paginate(r *http.Request, count, page int, results interface{}) (PaginatedResponse, error) {
	lastPage := (count + defaultPageSize - 1) / defaultPageSize
	if lastPage == 0 {
		lastPage = 1
	}
	if page > lastPage {
		return PaginatedResponse{}, errInvalidPage
	}

	resp := PaginatedResponse{
		Count:   count,
		Results: results,
	}
	if page < lastPage {
		resp.Next = pageURL(r, page+1)
	}
	if page > 1 {
		resp.Previous = pageURL(r, page-1)
	}
	return resp, nil
}

// pageURL rebuilds the request URL with the given page number.
func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	full := fmt.Sprintf("%s://%s%s", scheme, r.Host, u.RequestURI())
	return &full
}
