package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/mocks"
	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-thats-long-enough-32chars",
		TokenLifetimeMinutes:        30,
		RefreshTokenLifetimeMinutes: 7 * 24 * 60,
		AllowedEmailDomain:          "@gmail.com",
		MinPasswordLength:           8,
	}
}

func newTestAuthHandler(
	users *mocks.MockUserStore,
	jwt *mocks.MockJWTService,
	blacklist *mocks.MockTokenBlacklist,
) *AuthHandler {
	hasher := &mocks.MockPasswordHasher{}
	return NewAuthHandler(users, jwt, hasher, hasher, blacklist, testAuthConfig(), nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validPayload := map[string]string{
		"username": "yozuvchi",
		"email":    "yozuvchi@gmail.com",
		"password": "juda-maxfiy-parol",
	}

	t.Run("successful registration returns tokens", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		jwt := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
		handler := newTestAuthHandler(users, jwt, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Register, "/register/", validPayload)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Foydalanuvchi muvaffaqiyatli ro'yxatdan o'tdi!", body["message"])
		assert.Equal(t, "access-token", body["access"])
		assert.Equal(t, "refresh-token", body["refresh"])

		created, ok := users.Users["yozuvchi"]
		require.True(t, ok)
		assert.Equal(t, "hashed:juda-maxfiy-parol", created.HashedPassword)
		assert.True(t, created.IsActive)
	})

	t.Run("rejects email outside the allowed domain", func(t *testing.T) {
		t.Parallel()

		handler := newTestAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		payload := map[string]string{
			"username": "yozuvchi",
			"email":    "yozuvchi@example.com",
			"password": "juda-maxfiy-parol",
		}
		w := postJSON(t, handler.Register, "/register/", payload)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		errs := body["errors"].(map[string]interface{})
		require.Contains(t, errs, "email")
	})

	t.Run("rejects already registered email", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		users.EmailExistsFn = func(ctx context.Context, email string) (bool, error) {
			return true, nil
		}
		handler := newTestAuthHandler(users, &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Register, "/register/", validPayload)

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		emailErrs := errs["email"].([]interface{})
		assert.Equal(t, "Ushbu elektron pochta manzili allaqachon ro'yxatdan o'tgan.", emailErrs[0])
	})

	t.Run("rejects weak passwords with every failing rule", func(t *testing.T) {
		t.Parallel()

		handler := newTestAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		payload := map[string]string{
			"username": "yozuvchi",
			"email":    "yozuvchi@gmail.com",
			"password": "1234567",
		}
		w := postJSON(t, handler.Register, "/register/", payload)

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		passwordErrs := errs["password"].([]interface{})
		// Short, common and entirely numeric all apply at once.
		assert.Len(t, passwordErrs, 3)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		handler := newTestAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Register, "/register/", map[string]string{"username": "yozuvchi"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seedUser := func(users *mocks.MockUserStore) uuid.UUID {
		id := uuid.New()
		users.Users["yozuvchi"] = userFixture(id, "yozuvchi", "yozuvchi@gmail.com", "hashed:juda-maxfiy-parol", true)
		return id
	}

	t.Run("successful login returns token pair", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		seedUser(users)
		jwt := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
		handler := newTestAuthHandler(users, jwt, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Login, "/login/", map[string]string{
			"username": "yozuvchi",
			"password": "juda-maxfiy-parol",
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Foydalanuvchi muvaffaqiyatli tizimga kirdi!", body["message"])
		assert.Equal(t, "access-token", body["access"])
		assert.Equal(t, "refresh-token", body["refresh"])
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		seedUser(users)
		handler := newTestAuthHandler(users, &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Login, "/login/", map[string]string{
			"username": "yozuvchi",
			"password": "boshqa-parol",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Not'g'ri foydalanuvchi nomi yoki parol!", body["message"])
	})

	t.Run("unknown username returns 401 with the same message", func(t *testing.T) {
		t.Parallel()

		handler := newTestAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Login, "/login/", map[string]string{
			"username": "notanib",
			"password": "juda-maxfiy-parol",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not'g'ri foydalanuvchi nomi yoki parol!", decodeBody(t, w)["message"])
	})

	t.Run("inactive user cannot log in", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		users.Users["yozuvchi"] = userFixture(uuid.New(), "yozuvchi", "yozuvchi@gmail.com", "hashed:juda-maxfiy-parol", false)
		handler := newTestAuthHandler(users, &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Login, "/login/", map[string]string{
			"username": "yozuvchi",
			"password": "juda-maxfiy-parol",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	claims := &auth.Claims{
		UserID:    userID,
		TokenType: "refresh",
		ID:        "jti-1",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	t.Run("rotation issues a new pair and blacklists the old token", func(t *testing.T) {
		t.Parallel()

		jwt := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			Claims:       claims,
		}
		blacklist := mocks.NewMockTokenBlacklist()
		handler := newTestAuthHandler(mocks.NewMockUserStore(), jwt, blacklist)

		w := postJSON(t, handler.Refresh, "/refresh/", map[string]string{"refresh": "old-refresh"})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "new-access", body["access"])
		assert.Equal(t, "new-refresh", body["refresh"])

		revoked, err := blacklist.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("missing refresh token returns 400 detail", func(t *testing.T) {
		t.Parallel()

		handler := newTestAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Refresh, "/refresh/", map[string]string{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Refresh token talab qilinadi", decodeBody(t, w)["detail"])
	})

	t.Run("invalid refresh token returns 400 detail", func(t *testing.T) {
		t.Parallel()

		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrInvalidRefreshToken}
		handler := newTestAuthHandler(mocks.NewMockUserStore(), jwt, mocks.NewMockTokenBlacklist())

		w := postJSON(t, handler.Refresh, "/refresh/", map[string]string{"refresh": "garbage"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Token is invalid or expired", decodeBody(t, w)["detail"])
	})

	t.Run("blacklisted refresh token is rejected", func(t *testing.T) {
		t.Parallel()

		jwt := &mocks.MockJWTService{Claims: claims}
		blacklist := mocks.NewMockTokenBlacklist()
		require.NoError(t, blacklist.Revoke(context.Background(), "jti-1", claims.ExpiresAt))
		handler := newTestAuthHandler(mocks.NewMockUserStore(), jwt, blacklist)

		w := postJSON(t, handler.Refresh, "/refresh/", map[string]string{"refresh": "rotated-away"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Token is blacklisted", decodeBody(t, w)["detail"])
	})
}
