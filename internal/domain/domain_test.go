package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestNewAuthor(t *testing.T) {
	t.Parallel()

	t.Run("valid author", func(t *testing.T) {
		birth := domain.NewDate(1941, time.November, 12)
		author, err := domain.NewAuthor("O'tkir", "Hoshimov", strPtr("yozuvchi"), &birth, nil)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, author.ID)
		assert.Equal(t, "O'tkir Hoshimov", author.FullName())
	})

	t.Run("missing last name", func(t *testing.T) {
		_, err := domain.NewAuthor("Abdulla", "", nil, nil, nil)
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "last_name", vErr.Field)
	})

	t.Run("first name may be empty", func(t *testing.T) {
		author, err := domain.NewAuthor("", "Qodiriy", nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Qodiriy", author.FullName())
	})
}

func TestNewBook(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()

	t.Run("valid book", func(t *testing.T) {
		book, err := domain.NewBook("Ikki eshik orasi", authorID, nil, nil, nil, strPtr("9789943012345"), intPtr(640), nil)
		require.NoError(t, err)
		assert.Equal(t, authorID, book.AuthorID)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := domain.NewBook("  ", authorID, nil, nil, nil, nil, nil, nil)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "title", vErr.Field)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := domain.NewBook("Kitob", uuid.Nil, nil, nil, nil, nil, nil, nil)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "author", vErr.Field)
	})

	t.Run("isbn too long", func(t *testing.T) {
		_, err := domain.NewBook("Kitob", authorID, nil, nil, nil, strPtr("97899430123456789"), nil, nil)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "isbn", vErr.Field)
	})

	t.Run("non-positive pages", func(t *testing.T) {
		_, err := domain.NewBook("Kitob", authorID, nil, nil, nil, nil, intPtr(0), nil)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "pages", vErr.Field)
	})
}

func TestNewReview(t *testing.T) {
	t.Parallel()

	bookID := uuid.New()

	t.Run("valid review", func(t *testing.T) {
		review, err := domain.NewReview(bookID, "Aziza", 5, strPtr("Zo'r kitob"))
		require.NoError(t, err)
		assert.False(t, review.CreatedAt.IsZero())
		assert.True(t, review.CreatedAt.Before(time.Now().UTC().Add(time.Second)))
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, -1, 6, 100} {
			_, err := domain.NewReview(bookID, "Aziza", rating, nil)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "rating %d should fail", rating)
			assert.Equal(t, "rating", vErr.Field)
		}
		for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
			_, err := domain.NewReview(bookID, "Aziza", rating, nil)
			assert.NoError(t, err, "rating %d should pass", rating)
		}
	})

	t.Run("missing reviewer name", func(t *testing.T) {
		_, err := domain.NewReview(bookID, "", 3, nil)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "reviewer_name", vErr.Field)
	})
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("javohir", "javohir@gmail.com", "juda-mahfiy-parol")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = domain.NewUser("", "javohir@gmail.com", "parol")
	require.Error(t, err)
}

func TestValidationErrorWrapsSentinel(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationError("rating", "must be between 1 and 5", domain.ErrValidation)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "rating: must be between 1 and 5", err.Error())
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d, err := domain.ParseDate("1894-04-10")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1894-04-10"`, string(raw))

	var parsed domain.Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, d, parsed)

	_, err = domain.ParseDate("10/04/1894")
	assert.Error(t, err)
}
