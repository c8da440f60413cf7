package api

import (
	"github.com/google/uuid"
	"github.com/javohir-a/kutubxona/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the envelope shape for register and login: the token pair
// rides at the top level next to the regular envelope fields.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

// RefreshRequest defines the payload for the token refresh endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse defines the successful response for the token refresh
// endpoint. Rotation is enabled, so a new refresh token is always issued.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserResponse is the registration response data payload.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PaginatedResponse is the page-based list shape for authors and books.
type PaginatedResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// AuthorRequest defines the payload for author create and update. Update is
// partial: absent fields keep their stored values.
type AuthorRequest struct {
	FirstName *string      `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string      `json:"last_name"  validate:"omitempty,max=100"`
	Bio       *string      `json:"bio"`
	BirthDate *domain.Date `json:"birth_date"`
	DeathDate *domain.Date `json:"death_date"`
}

// GenreRequest defines the payload for genre create and update.
type GenreRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}

// PublisherRequest defines the payload for publisher create and update.
type PublisherRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=200"`
	Address *string `json:"address"`
	Website *string `json:"website" validate:"omitempty,url"`
}

// BookRequest defines the payload for book create and update. Author,
// publisher and genres are referenced by ID; the stored representation
// carries the expanded author_detail/publisher_detail/genres_list.
type BookRequest struct {
	Title         *string      `json:"title"          validate:"omitempty,max=255"`
	Author        *uuid.UUID   `json:"author"`
	Publisher     *uuid.UUID   `json:"publisher"`
	Genres        *[]uuid.UUID `json:"genres"`
	PublishedDate *domain.Date `json:"published_date"`
	ISBN          *string      `json:"isbn"           validate:"omitempty,max=13"`
	Pages         *int         `json:"pages"          validate:"omitempty,gt=0"`
	Description   *string      `json:"description"`
}

// ReviewRequest defines the payload for review create and update. CreatedAt
// is server-assigned and never client-settable.
type ReviewRequest struct {
	Book         *uuid.UUID `json:"book"`
	ReviewerName *string    `json:"reviewer_name" validate:"omitempty,max=100"`
	Rating       *int       `json:"rating"        validate:"omitempty,gte=1,lte=5"`
	Comment      *string    `json:"comment"`
}
