package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/javohir-a/kutubxona/internal/api/shared"
	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/domain"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/javohir-a/kutubxona/internal/store"
)

// User-facing authentication messages.
const (
	msgRegistered       = "Foydalanuvchi muvaffaqiyatli ro'yxatdan o'tdi!"
	msgLoggedIn         = "Foydalanuvchi muvaffaqiyatli tizimga kirdi!"
	msgBadCredentials   = "Not'g'ri foydalanuvchi nomi yoki parol!"
	msgRefreshRequired  = "Refresh token talab qilinadi"
	msgRefreshInvalid   = "Token is invalid or expired"
	msgRefreshRevoked   = "Token is blacklisted"
	msgEmailTaken       = "Ushbu elektron pochta manzili allaqachon ro'yxatdan o'tgan."
	msgUsernameTaken    = "A user with that username already exists."
	emailDomainTemplate = "Faqat '%s' bilan tugaydigan elektron pochta manzillariga ruxsat beriladi."
)

// AuthHandler handles user registration, login and token refresh.
type AuthHandler struct {
	userStore      store.UserStore
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	passwordVerify auth.PasswordVerifier
	passwordPolicy *auth.PasswordPolicy
	tokenBlacklist store.TokenBlacklist
	authConfig     config.AuthConfig
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokenBlacklist store.TokenBlacklist,
	authConfig config.AuthConfig,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:      userStore,
		jwtService:     jwtService,
		passwordHasher: hasher,
		passwordVerify: verifier,
		passwordPolicy: auth.NewPasswordPolicy(authConfig.MinPasswordLength),
		tokenBlacklist: tokenBlacklist,
		authConfig:     authConfig,
		validator:      newValidator(),
		logger:         log.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /register/ requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Collect every field failure before answering, the way form validation
	// reports all problems at once.
	fieldErrors := map[string][]string{}

	if !strings.HasSuffix(req.Email, h.authConfig.AllowedEmailDomain) {
		fieldErrors["email"] = append(fieldErrors["email"],
			fmt.Sprintf(emailDomainTemplate, h.authConfig.AllowedEmailDomain))
	} else {
		taken, err := h.userStore.EmailExists(r.Context(), req.Email)
		if err != nil {
			log.Error("failed to check email existence", slog.String("error", err.Error()))
			HandleAPIError(w, r, err, "")
			return
		}
		if taken {
			fieldErrors["email"] = append(fieldErrors["email"], msgEmailTaken)
		}
	}

	if problems := h.passwordPolicy.Validate(req.Password, req.Username, req.Email); len(problems) > 0 {
		fieldErrors["password"] = problems
	}

	if len(fieldErrors) > 0 {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, fieldErrors)
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	user.HashedPassword = hashed

	if err := h.userStore.Create(r.Context(), user); err != nil {
		switch err {
		case store.ErrUsernameExists:
			shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
				map[string][]string{"username": {msgUsernameTaken}})
		case store.ErrEmailExists:
			shared.RespondWithFieldErrors(w, r, http.StatusBadRequest,
				map[string][]string{"email": {msgEmailTaken}})
		default:
			log.Error("failed to create user", slog.String("error", err.Error()))
			HandleAPIError(w, r, err, "")
		}
		return
	}

	access, refresh, err := h.generateTokenPair(r, user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Success: true,
		Message: msgRegistered,
		Data:    UserResponse{Username: user.Username, Email: user.Email},
		Access:  access,
		Refresh: refresh,
	})
}

// Login handles POST /login/ requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if err == store.ErrUserNotFound {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		log.Error("failed to load user for login", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	if !user.IsActive || h.passwordVerify.Compare(user.HashedPassword, req.Password) != nil {
		log.Debug("login rejected", slog.String("username", req.Username))
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	access, refresh, err := h.generateTokenPair(r, user)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		Message: msgLoggedIn,
		Access:  access,
		Refresh: refresh,
	})
}

// Refresh handles POST /refresh/ requests. Rotation is enabled: the presented
// refresh token is blacklisted and a brand new pair is issued.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshRequest
	if err := shared.DecodeJSON(r, &req); err != nil || req.Refresh == "" {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			map[string]string{"detail": msgRefreshRequired})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.Refresh)
	if err != nil {
		log.Debug("refresh token rejected", slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			map[string]string{"detail": msgRefreshInvalid})
		return
	}

	revoked, err := h.tokenBlacklist.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		log.Error("failed to check token blacklist", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	if revoked {
		log.Warn("blacklisted refresh token presented",
			slog.String("jti", claims.ID),
			slog.String("user_id", claims.UserID.String()))
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			map[string]string{"detail": msgRefreshRevoked})
		return
	}

	// Blacklist the old token before issuing the new pair so a crash between
	// the two steps cannot leave both tokens usable.
	if err := h.tokenBlacklist.Revoke(r.Context(), claims.ID, claims.ExpiresAt); err != nil {
		log.Error("failed to revoke refresh token", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	access, err := h.jwtService.GenerateToken(r.Context(), claims.UserID)
	if err != nil {
		log.Error("failed to generate access token", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), claims.UserID)
	if err != nil {
		log.Error("failed to generate refresh token", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshResponse{
		Access:  access,
		Refresh: refresh,
	})
}

// generateTokenPair mints an access and refresh token for the user.
func (h *AuthHandler) generateTokenPair(r *http.Request, user *domain.User) (string, string, error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	access, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate access token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return "", "", err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate refresh token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return "", "", err
	}
	return access, refresh, nil
}
