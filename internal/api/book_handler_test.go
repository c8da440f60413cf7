package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/mocks"
	"github.com/javohir-a/kutubxona/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookRouter(store *mocks.MockBookStore) chi.Router {
	h := NewBookHandler(store, nil)
	r := chi.NewRouter()
	r.Post("/books/create/", h.Create)
	r.Get("/books/", h.List)
	r.Get("/books/{id}/", h.Detail)
	r.Put("/books/{id}/update/", h.Update)
	r.Patch("/books/{id}/update/", h.Update)
	r.Delete("/books/{id}/delete/", h.Delete)
	return r
}

func TestBookCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid payload returns 201", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodPost, "/books/create/", map[string]interface{}{
			"title":  "O'tkan kunlar",
			"author": uuid.NewString(),
			"pages":  270,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Kitob muvaffaqiyatli qo'shildi!", body["message"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "O'tkan kunlar", data["title"])
		assert.Len(t, bookStore.Books, 1)
	})

	t.Run("author already owning a book is rejected with a field error", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		authorID := uuid.New()
		existing := bookFixture(t, "O'tkan kunlar", authorID)
		bookStore.Books[existing.ID] = existing
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodPost, "/books/create/", map[string]interface{}{
			"title":  "Mehrobdan chayon",
			"author": authorID.String(),
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		authorErrs := errs["author"].([]interface{})
		assert.Contains(t, authorErrs[0], "allaqachon bitta kitob")
		assert.Len(t, bookStore.Books, 1)
	})

	t.Run("missing title and author are both reported", func(t *testing.T) {
		t.Parallel()

		router := newBookRouter(mocks.NewMockBookStore())

		w := serveJSON(t, router, http.MethodPost, "/books/create/", map[string]interface{}{
			"pages": 100,
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "author")
	})

	t.Run("non-positive pages is rejected", func(t *testing.T) {
		t.Parallel()

		router := newBookRouter(mocks.NewMockBookStore())

		w := serveJSON(t, router, http.MethodPost, "/books/create/", map[string]interface{}{
			"title":  "O'tkan kunlar",
			"author": uuid.NewString(),
			"pages":  0,
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "pages")
	})

	t.Run("duplicate isbn from the store maps to a field error", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		bookStore.CreateFn = func(ctx context.Context, book *domain.Book) error {
			return store.ErrISBNExists
		}
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodPost, "/books/create/", map[string]interface{}{
			"title":  "O'tkan kunlar",
			"author": uuid.NewString(),
			"isbn":   "9789943012345",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "isbn")
	})
}

func TestBookUpdate(t *testing.T) {
	t.Parallel()

	t.Run("re-saving the same book with its own author succeeds", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		authorID := uuid.New()
		book := bookFixture(t, "O'tkan kunlar", authorID)
		bookStore.Books[book.ID] = book
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodPut, "/books/"+book.ID.String()+"/update/",
			map[string]interface{}{
				"title":  "O'tkan kunlar (qayta nashr)",
				"author": authorID.String(),
			})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Kitob muvaffaqiyatli yangilandi!", body["message"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "O'tkan kunlar (qayta nashr)", data["title"])
	})

	t.Run("moving the book to an author who already owns one fails", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		busyAuthor := uuid.New()
		other := bookFixture(t, "Mehrobdan chayon", busyAuthor)
		book := bookFixture(t, "O'tkan kunlar", uuid.New())
		bookStore.Books[other.ID] = other
		bookStore.Books[book.ID] = book
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodPatch, "/books/"+book.ID.String()+"/update/",
			map[string]interface{}{"author": busyAuthor.String()})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		require.Contains(t, errs, "author")
	})

	t.Run("unknown book returns 404", func(t *testing.T) {
		t.Parallel()

		router := newBookRouter(mocks.NewMockBookStore())

		w := serveJSON(t, router, http.MethodPut, "/books/"+uuid.NewString()+"/update/",
			map[string]interface{}{"title": "Yangi"})

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Kitob topilmadi!", decodeBody(t, w)["message"])
	})
}

func TestBookDetailAndList(t *testing.T) {
	t.Parallel()

	t.Run("detail embeds the hydrated expansions", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		book := bookFixture(t, "O'tkan kunlar", uuid.New())
		book.Author = &domain.Author{ID: book.AuthorID, FirstName: "Abdulla", LastName: "Qodiriy"}
		book.Genres = []domain.Genre{{ID: uuid.New(), Name: "Roman"}}
		bookStore.Books[book.ID] = book
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodGet, "/books/"+book.ID.String()+"/", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "«O'tkan kunlar» kitobi topildi!", body["message"])
		data := body["data"].(map[string]interface{})
		authorDetail := data["author_detail"].(map[string]interface{})
		assert.Equal(t, "Qodiriy", authorDetail["last_name"])
		genres := data["genres_list"].([]interface{})
		require.Len(t, genres, 1)
	})

	t.Run("list is paginated like authors", func(t *testing.T) {
		t.Parallel()

		bookStore := mocks.NewMockBookStore()
		for i := 0; i < 3; i++ {
			book := bookFixture(t, string(rune('A'+i))+" kitob", uuid.New())
			bookStore.Books[book.ID] = book
		}
		router := newBookRouter(bookStore)

		w := serveJSON(t, router, http.MethodGet, "/books/", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var page PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 3, page.Count)
		assert.Nil(t, page.Next)
	})
}

func TestBookDelete(t *testing.T) {
	t.Parallel()

	bookStore := mocks.NewMockBookStore()
	book := bookFixture(t, "O'tkan kunlar", uuid.New())
	bookStore.Books[book.ID] = book
	router := newBookRouter(bookStore)

	w := serveJSON(t, router, http.MethodDelete, "/books/"+book.ID.String()+"/delete/", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, bookStore.Books)

	w = serveJSON(t, router, http.MethodDelete, "/books/"+book.ID.String()+"/delete/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
