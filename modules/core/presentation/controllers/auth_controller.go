package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/configuration"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Key() string { return "/auth" }

func (c *AuthController) Register(r *mux.Router) {
	login := r.PathPrefix("/auth/sign-in").Subrouter()
	login.Use(coremiddleware.RedirectIfAuthenticated)
	login.HandleFunc("", c.signIn).Methods(http.MethodPost)

	r.HandleFunc("/auth/sign-out", c.signOut).Methods(http.MethodPost)
	r.Handle("/auth/me", coremiddleware.RequireAuthenticated(http.HandlerFunc(c.me))).Methods(http.MethodGet)
}

type signInDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) signIn(w http.ResponseWriter, r *http.Request) {
	var dto signInDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := c.auth.SignIn(r.Context(), dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, r, serrors.NewError("UNAUTHORIZED", "invalid email or password", ""))
			return
		}
		writeError(w, r, err)
		return
	}

	conf := configuration.Use()
	http.SetCookie(w, &http.Cookie{
		Name:     conf.Session.CookieName,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, sess)
}

func (c *AuthController) signOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := c.auth.SignOut(r.Context(), sess.Token); err != nil {
		writeError(w, r, err)
		return
	}
	conf := configuration.Use()
	http.SetCookie(w, &http.Cookie{Name: conf.Session.CookieName, Value: "", MaxAge: -1, Path: "/"})
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	UserID      uint           `json:"user_id"`
	Email       string         `json:"email"`
	Permissions map[string]any `json:"permissions"`
}

func (c *AuthController) me(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	pages := make(map[string]any, len(sess.Permissions))
	for code := range sess.Permissions {
		pages[code] = permission.PageFor(sess.Permissions, code)
	}
	writeJSON(w, http.StatusOK, meResponse{UserID: sess.UserID, Email: sess.Email, Permissions: pages})
}
