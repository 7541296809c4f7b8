package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

const usersObjectCode = "admin.users"

type UsersController struct {
	users *services.UserService
}

func NewUsersController(users *services.UserService) *UsersController {
	return &UsersController{users: users}
}

func (c *UsersController) Key() string { return "/users" }

func (c *UsersController) Register(r *mux.Router) {
	read := r.PathPrefix("/users").Subrouter()
	read.Use(coremiddleware.RequireObject(usersObjectCode, permission.ActionView))
	read.HandleFunc("", c.list).Methods(http.MethodGet)
	read.HandleFunc("/{id:[0-9]+}", c.get).Methods(http.MethodGet)

	create := r.PathPrefix("/users").Subrouter()
	create.Use(coremiddleware.RequireObject(usersObjectCode, permission.ActionCreate))
	create.HandleFunc("", c.create).Methods(http.MethodPost)

	edit := r.PathPrefix("/users").Subrouter()
	edit.Use(coremiddleware.RequireObject(usersObjectCode, permission.ActionEdit))
	edit.HandleFunc("/{id:[0-9]+}", c.update).Methods(http.MethodPut)

	del := r.PathPrefix("/users").Subrouter()
	del.Use(coremiddleware.RequireObject(usersObjectCode, permission.ActionDelete))
	del.HandleFunc("/{id:[0-9]+}", c.delete).Methods(http.MethodDelete)
}

type createUserDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

type updateUserDTO struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

type userResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

func (c *UsersController) list(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *UsersController) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "user not found", ""))
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (c *UsersController) create(w http.ResponseWriter, r *http.Request) {
	var dto createUserDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.users.Create(r.Context(), user.New(dto.Email, dto.FirstName, dto.LastName), dto.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (c *UsersController) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto updateUserDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	existing, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "user not found", ""))
		return
	}
	updated, err := c.users.Update(r.Context(), user.Hydrate(
		existing.ID(),
		dto.Email,
		existing.PasswordHash(),
		dto.FirstName,
		dto.LastName,
		dto.IsActive,
		existing.CreatedAt(),
		existing.UpdatedAt(),
	))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (c *UsersController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
