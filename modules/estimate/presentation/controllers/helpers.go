package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/serrors"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("request failed")
	if base, ok := err.(*serrors.BaseError); ok {
		writeJSON(w, serrors.HTTPStatus(base), base)
		return
	}
	if verrs, ok := err.(*serrors.ValidationErrors); ok {
		writeJSON(w, http.StatusBadRequest, verrs)
		return
	}
	writeJSON(w, http.StatusInternalServerError, serrors.NewError("INTERNAL", "internal server error", ""))
}

func decodeAndValidate(r *http.Request, dto any) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return serrors.NewError("INVALID_PAYLOAD", "malformed JSON body", err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return serrors.ProcessValidatorErrors(err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, serrors.NewError("INVALID_PAYLOAD", "invalid id in path", raw)
	}
	return id, nil
}

// queryUUID reads an optional uuid query parameter; absence is not an
// error.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, serrors.NewError("INVALID_PAYLOAD", "invalid "+name, raw)
	}
	return &id, nil
}
