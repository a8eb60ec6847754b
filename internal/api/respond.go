package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"campusbooking/internal/apperr"
)

var validate = validator.New()

// errUnauthorized covers the unreachable case of a protected handler running
// without an identity in context.
var errUnauthorized = apperr.Forbidden("unauthorized")

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// respondError maps the error taxonomy to an HTTP status. Internal errors
// are logged and reported with a generic message.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		msg = "internal server error"
	}
	respondJSON(w, status, errorResponse{Error: msg})
}

// decode reads the JSON body without struct validation, for partial-update
// requests whose required fields may be legitimately absent.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. Failures come back as ValidationErrors.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := decode(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return apperr.Validation("invalid request: %v", verr)
		}
		return apperr.Validation("invalid request")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}
