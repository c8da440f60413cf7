package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/stretchr/testify/require"
)

func userFixture(id uuid.UUID, username, email, hashed string, active bool) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:             id,
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		IsActive:       active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func authorFixture(t *testing.T, firstName, lastName string) *domain.Author {
	t.Helper()
	author, err := domain.NewAuthor(firstName, lastName, nil, nil, nil)
	require.NoError(t, err)
	return author
}

func bookFixture(t *testing.T, title string, authorID uuid.UUID) *domain.Book {
	t.Helper()
	book, err := domain.NewBook(title, authorID, nil, []uuid.UUID{}, nil, nil, nil, nil)
	require.NoError(t, err)
	return book
}

// serveJSON runs a request with a JSON body through a router so chi path
// parameters resolve the way they do in production.
func serveJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
