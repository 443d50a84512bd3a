// Copyright (c) 2026 Agora. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ltcastel/agora/internal/platform/constants"
	"github.com/ltcastel/agora/internal/platform/ctxutil"
	requestutil "github.com/ltcastel/agora/internal/platform/request"
	"github.com/ltcastel/agora/internal/platform/respond"
	"github.com/ltcastel/agora/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// Registration and login are public; logout and profile run behind the
// session middleware, which is injected by the router as the `session`
// argument of [Handler.Routes].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account (public).
//   - POST /login    : Verifies credentials, sets the session cookie (public).
//   - POST /logout   : Revokes the session, clears the cookie (protected).
//   - GET  /me       : Returns the authenticated account (protected).
func (handler *Handler) Routes(session func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(session)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	BirthDate       string `json:"birth_date"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: PublicUser (id and name only — never the credential hash)
  - 400: Validation failure (missing fields, password confirmation mismatch)
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPhoneNumber, input.PhoneNumber).
		Required(FieldBirthDate, input.BirthDate).
		Date(FieldBirthDate, input.BirthDate).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldPasswordConfirm, input.PasswordConfirm).
		Match(FieldPasswordConfirm, input.PasswordConfirm, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:            input.Name,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		BirthDate:       input.BirthDate,
		Password:        input.Password,
		PasswordConfirm: input.PasswordConfirm,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
login verifies credentials and establishes a session.

POST /api/v1/auth/login

On success the signed session token travels back as an httpOnly cookie named
"token"; the body never contains the raw token.

Response:
  - 200: Authenticated user profile and session expiry
  - 401: Generic "Invalid email or password" (no field-level detail)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]any{
		FieldUser:      session.User,
		FieldExpiresAt: session.ExpiresAt,
	})
}

/*
logout revokes the current session.

POST /api/v1/auth/logout

The token id joins the server-side denylist for its remaining life and the
cookie is cleared. A replayed copy of the token stops verifying immediately.

Response:
  - 204: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetSessionClaims(request.Context())

	if claims != nil {
		if err := handler.authService.Logout(request.Context(), claims); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
me returns the authenticated account's profile.

GET /api/v1/auth/me

Response:
  - 200: User profile (hash omitted by the entity's JSON mapping)
  - 401: Not authenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
