package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
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

// decodeAndValidate parses the JSON body into dto and runs struct
// validation on it.
func decodeAndValidate(r *http.Request, dto any) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return serrors.NewError("INVALID_PAYLOAD", "malformed JSON body", err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return serrors.ProcessValidatorErrors(err)
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := parseUint(raw)
	if err != nil {
		return 0, serrors.NewError("INVALID_PAYLOAD", "invalid id in path", raw)
	}
	return id, nil
}

func parseUint(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	return uint(v), err
}
