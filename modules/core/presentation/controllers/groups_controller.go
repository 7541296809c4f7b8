package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/group"
	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	"github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

const groupsObjectCode = "admin.groups"

type GroupsController struct {
	groups *services.GroupService
}

func NewGroupsController(groups *services.GroupService) *GroupsController {
	return &GroupsController{groups: groups}
}

func (c *GroupsController) Key() string { return "/groups" }

func (c *GroupsController) Register(r *mux.Router) {
	read := r.PathPrefix("/groups").Subrouter()
	read.Use(coremiddleware.RequireObject(groupsObjectCode, permission.ActionView))
	read.HandleFunc("", c.list).Methods(http.MethodGet)
	read.HandleFunc("/{id:[0-9]+}", c.get).Methods(http.MethodGet)

	create := r.PathPrefix("/groups").Subrouter()
	create.Use(coremiddleware.RequireObject(groupsObjectCode, permission.ActionCreate))
	create.HandleFunc("", c.create).Methods(http.MethodPost)

	edit := r.PathPrefix("/groups").Subrouter()
	edit.Use(coremiddleware.RequireObject(groupsObjectCode, permission.ActionEdit))
	edit.HandleFunc("/{id:[0-9]+}", c.update).Methods(http.MethodPut)
	edit.HandleFunc("/{id:[0-9]+}/users/{userID:[0-9]+}", c.addUser).Methods(http.MethodPost)
	edit.HandleFunc("/{id:[0-9]+}/users/{userID:[0-9]+}", c.removeUser).Methods(http.MethodDelete)

	del := r.PathPrefix("/groups").Subrouter()
	del.Use(coremiddleware.RequireObject(groupsObjectCode, permission.ActionDelete))
	del.HandleFunc("/{id:[0-9]+}", c.delete).Methods(http.MethodDelete)
}

type groupDTO struct {
	Name string `json:"name" validate:"required"`
}

func (c *GroupsController) list(w http.ResponseWriter, r *http.Request) {
	groups, err := c.groups.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (c *GroupsController) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := c.groups.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "group not found", ""))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (c *GroupsController) create(w http.ResponseWriter, r *http.Request) {
	var dto groupDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := c.groups.Create(r.Context(), group.Group{Name: dto.Name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *GroupsController) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var dto groupDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		writeError(w, r, err)
		return
	}
	existing, err := c.groups.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, serrors.NewError("NOT_FOUND", "group not found", ""))
		return
	}
	existing.Name = dto.Name
	updated, err := c.groups.Update(r.Context(), existing)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *GroupsController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.groups.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *GroupsController) addUser(w http.ResponseWriter, r *http.Request) {
	groupID, userID, err := rolePairIDs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.groups.AddUser(r.Context(), groupID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *GroupsController) removeUser(w http.ResponseWriter, r *http.Request) {
	groupID, userID, err := rolePairIDs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.groups.RemoveUser(r.Context(), groupID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
