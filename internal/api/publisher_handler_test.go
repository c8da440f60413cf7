package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisherRouter(store *mocks.MockPublisherStore) chi.Router {
	h := NewPublisherHandler(store, nil)
	r := chi.NewRouter()
	r.Post("/publishers/create/", h.Create)
	r.Get("/publishers/", h.List)
	r.Get("/publishers/{id}/", h.Detail)
	r.Put("/publishers/{id}/update/", h.Update)
	r.Patch("/publishers/{id}/update/", h.Update)
	r.Delete("/publishers/{id}/delete/", h.Delete)
	return r
}

func publisherFixture(t *testing.T, name string) *domain.Publisher {
	t.Helper()
	publisher, err := domain.NewPublisher(name, nil, nil)
	require.NoError(t, err)
	return publisher
}

func TestPublisherCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid payload returns 201", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewMockPublisherStore()
		router := newPublisherRouter(store)

		w := serveJSON(t, router, http.MethodPost, "/publishers/create/", map[string]interface{}{
			"name":    "Sharq nashriyoti",
			"address": "Toshkent",
			"website": "https://sharq.uz",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Nashriyot muvaffaqiyatli yaratildi!", body["message"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Sharq nashriyoti", data["name"])
		assert.Equal(t, "https://sharq.uz", data["website"])
		assert.Len(t, store.Publishers, 1)
	})

	t.Run("malformed website is rejected", func(t *testing.T) {
		t.Parallel()

		router := newPublisherRouter(mocks.NewMockPublisherStore())

		w := serveJSON(t, router, http.MethodPost, "/publishers/create/", map[string]interface{}{
			"name":    "Sharq nashriyoti",
			"website": "not-a-url",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "website")
	})

	t.Run("missing name returns a field error", func(t *testing.T) {
		t.Parallel()

		router := newPublisherRouter(mocks.NewMockPublisherStore())

		w := serveJSON(t, router, http.MethodPost, "/publishers/create/", map[string]interface{}{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "name")
	})
}

func TestPublisherDetail(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockPublisherStore()
	publisher := publisherFixture(t, "Sharq nashriyoti")
	store.Publishers[publisher.ID] = publisher
	router := newPublisherRouter(store)

	w := serveJSON(t, router, http.MethodGet, "/publishers/"+publisher.ID.String()+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		fmt.Sprintf("«Sharq nashriyoti» (ID: %s) topildi!", publisher.ID),
		decodeBody(t, w)["message"])

	unknown := uuid.New()
	w = serveJSON(t, router, http.MethodGet, "/publishers/"+unknown.String()+"/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t,
		fmt.Sprintf("«%s» ID li nashriyot topilmadi!", unknown),
		decodeBody(t, w)["message"])
}

func TestPublisherList(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockPublisherStore()
	for _, name := range []string{"Sharq", "G'afur G'ulom"} {
		publisher := publisherFixture(t, name)
		store.Publishers[publisher.ID] = publisher
	}
	router := newPublisherRouter(store)

	w := serveJSON(t, router, http.MethodGet, "/publishers/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var publishers []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &publishers))
	assert.Len(t, publishers, 2)
}

func TestPublisherUpdate(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewMockPublisherStore()
		publisher := publisherFixture(t, "Sharq nashriyoti")
		store.Publishers[publisher.ID] = publisher
		router := newPublisherRouter(store)

		w := serveJSON(t, router, http.MethodPatch, "/publishers/"+publisher.ID.String()+"/update/",
			map[string]interface{}{"address": "Toshkent, Navoiy ko'chasi"})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Nashriyot muvaffaqiyatli yangilandi!", body["message"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Sharq nashriyoti", data["name"])
		assert.Equal(t, "Toshkent, Navoiy ko'chasi", data["address"])
	})

	t.Run("unknown publisher returns 404", func(t *testing.T) {
		t.Parallel()

		router := newPublisherRouter(mocks.NewMockPublisherStore())

		w := serveJSON(t, router, http.MethodPut, "/publishers/"+uuid.NewString()+"/update/",
			map[string]interface{}{"name": "Yangi"})

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Nashriyot topilmadi!", decodeBody(t, w)["message"])
	})
}

func TestPublisherDelete(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockPublisherStore()
	publisher := publisherFixture(t, "Sharq nashriyoti")
	store.Publishers[publisher.ID] = publisher
	router := newPublisherRouter(store)

	w := serveJSON(t, router, http.MethodDelete, "/publishers/"+publisher.ID.String()+"/delete/", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Publishers)
}
