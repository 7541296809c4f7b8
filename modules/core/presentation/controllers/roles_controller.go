package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/role"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

const rolesObjectCode = "admin.roles"

type RolesController struct {
	roles *services.RoleService
}

func NewRolesController(roles *services.RoleService) *RolesController {
	return &RolesController{roles: roles}
}

func (c *RolesController) Key() string { return "/roles" }

func (c *RolesController) Register(r *mux.Router) {
	read := r.PathPrefix("/roles").Subrouter()
	read.Use(coremiddleware.RequireObject(rolesObjectCode, permission.ActionView))
	read.HandleFunc("", c.list).Methods(http.MethodGet)
	read.HandleFunc("/{id:[0-9]+}", c.get).Methods(http.MethodGet)

	create := r.PathPrefix("/roles").Subrouter()
	create.Use(coremiddleware.RequireObject(rolesObjectCode, permission.ActionCreate))
	create.HandleFunc("", c.create).Methods(http.MethodPost)

	edit := r.PathPrefix("/roles").Subrouter()
	edit.Use(coremiddleware.RequireObject(rolesObjectCode, permission.ActionEdit))
	edit.HandleFunc("/{id:[0-9]+}", c.update).Methods(http.MethodPut)
	edit.HandleFunc("/{id:[0-9]+}/users/{userID:[0-9]+}", c.assign).Methods(http.MethodPost)
	edit.HandleFunc("/{id:[0-9]+}/users/{userID:[0-9]+}", c.revoke).Methods(http.MethodDelete)

	del := r.PathPrefix("/roles").Subrouter()
	del.Use(coremiddleware.RequireObject(rolesObjectCode, permission.ActionDelete))
	del.HandleFunc("/{id:[0-9]+}", c.delete).Methods(http.MethodDelete)
}

type roleDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	AccessLevel int    `json:"access_level" validate:"gte=0"`
	Color       string `json:"color"`
}

type roleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	AccessLevel int    `json:"access_level"`
	Color       string `json:"color"`
	IsSystem    bool   `json:"is_system"`
}

func toRoleResponse(r role.Role) roleResponse {
	return roleResponse{
		ID:          r.ID(),
		Name:        r.Name(),
		Code:        r.Code(),
		AccessLevel: r.AccessLevel(),
		Color:       r.Color(),
		IsSystem:    r.IsSystem(),
	}
}

func (c *RolesController) list(w http.ResponseWriter, r *http.Request) {
	roles, err := c.roles.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]roleResponse, 0, len(roles))
	for _, item := range roles {
		out = append(out, toRoleResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *RolesController) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := c.roles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "role not found", ""))
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(item))
}

func (c *RolesController) create(w http.ResponseWriter, r *http.Request) {
	var dto roleDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.roles.Create(r.Context(), role.New(dto.Name, dto.Code, dto.AccessLevel, dto.Color))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoleResponse(created))
}

func (c *RolesController) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto roleDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	existing, err := c.roles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "role not found", ""))
		return
	}
	updated, err := c.roles.Update(
		r.Context(),
		existing.WithName(dto.Name).WithAccessLevel(dto.AccessLevel).WithColor(dto.Color),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(updated))
}

func (c *RolesController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.roles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrSystemRole) {
			writeError(w, r, serrors.NewError("CONFLICT", "system roles cannot be deleted", ""))
			return
		}
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *RolesController) assign(w http.ResponseWriter, r *http.Request) {
	roleID, userID, err := rolePairIDs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, _ := session.FromContext(r.Context())
	if err := c.roles.AssignToUser(r.Context(), userID, roleID, sess.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *RolesController) revoke(w http.ResponseWriter, r *http.Request) {
	roleID, userID, err := rolePairIDs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.roles.RevokeFromUser(r.Context(), userID, roleID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func rolePairIDs(r *http.Request) (roleID, userID uint, err error) {
	roleID, err = pathID(r)
	if err != nil {
		return 0, 0, err
	}
	vars := mux.Vars(r)
	parsed, err := parseUint(vars["userID"])
	if err != nil {
		return 0, 0, serrors.NewError("INVALID_PAYLOAD", "invalid user id in path", vars["userID"])
	}
	return roleID, parsed, nil
}
