package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/abrezinsky/evote/internal/auth"
	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/services"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrCodeElectionNotActive  = "ELECTION_NOT_ACTIVE"
	ErrCodeElectionEnded      = "ELECTION_ENDED"
	ErrCodeAlreadyVoted       = "ALREADY_VOTED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrBadRequest     = &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: "Bad request"}
	ErrUnauthorized   = &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: "Unauthorized"}
	ErrNotFound       = &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: "Not found"}
	ErrRateLimited    = &APIError{Status: http.StatusTooManyRequests, Code: ErrCodeRateLimited, Message: "Too many requests, slow down"}
	ErrInternalServer = &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
)

// NewAPIError creates a new API error with custom message and code
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest creates a 400 error with custom message
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

// ValidationError creates a 400 error for rejected input
func ValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: message}
}

// Unauthorized creates a 401 error with custom message
func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: message}
}

// Forbidden creates a 403 error with custom message
func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: message}
}

// NotFound creates a 404 error with custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a 409 error with custom message
func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// InternalError creates a 500 error, logs the original error
func InternalError(err error) *APIError {
	log.Printf("Internal error: %v", err)
	return ErrInternalServer
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 OK JSON response
func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created JSON response
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondSuccess writes a 200 OK with a message
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// respondError writes an error response
func respondError(w http.ResponseWriter, err error) {
	apiErr := ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// decodeOptionalJSON decodes the body when one was sent. An empty body,
// chunked or not, leaves target untouched.
func decodeOptionalJSON(r *http.Request, target interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return nil
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes the body and checks its validate tags
func decodeAndValidate(r *http.Request, target interface{}) error {
	if err := decodeJSON(r, target); err != nil {
		return err
	}
	if err := requestValidator.Struct(target); err != nil {
		return ValidationError(validationMessage(err))
	}
	return nil
}

// validationMessage turns validator output into a short client message
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email")
		case "oneof":
			parts = append(parts, field+" must be one of: "+fe.Param())
		case "min":
			parts = append(parts, field+" must have at least "+fe.Param()+" entries")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

// pathParam extracts a required URL parameter
func pathParam(r *http.Request, name string) (string, error) {
	param := strings.TrimSpace(chi.URLParam(r, name))
	if param == "" {
		return "", BadRequest("Missing " + name + " parameter")
	}
	return param, nil
}

// optionalTime parses an RFC 3339 timestamp; empty means unset
func optionalTime(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, ValidationError(field + " must be an RFC 3339 timestamp")
	}
	return &t, nil
}

// principal returns the authenticated caller
func principal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return auth.Principal{}, ErrUnauthorized
	}
	return p, nil
}

// ToAPIError converts service errors to appropriate API errors
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	// Check for application errors first
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case errors.ErrNotFound:
			return NotFound(appErr.Message)
		case errors.ErrValidation, errors.ErrInvalidInput:
			return ValidationError(appErr.Message)
		case errors.ErrConflict:
			return Conflict(appErr.Message)
		case errors.ErrUnauthorized:
			return Unauthorized(appErr.Message)
		case errors.ErrForbidden:
			return Forbidden(appErr.Message)
		default:
			return InternalError(err)
		}
	}

	var roleErr *services.InvalidRoleError
	if stderrors.As(err, &roleErr) {
		return ValidationError(roleErr.Error())
	}

	var svcErr *services.ServiceError
	if stderrors.As(err, &svcErr) {
		return serviceAPIError(svcErr)
	}

	return InternalError(err)
}

// serviceAPIError maps the service sentinels to status codes
func serviceAPIError(err *services.ServiceError) *APIError {
	switch err {
	case services.ErrInvalidCredentials, services.ErrInvalidAccessCode:
		return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeInvalidCredentials, Message: err.Message}
	case services.ErrAdminRegistration:
		return Forbidden(err.Message)
	case services.ErrAlreadyVoted:
		return &APIError{Status: http.StatusConflict, Code: ErrCodeAlreadyVoted, Message: err.Message}
	case services.ErrEmailTaken, services.ErrElectionStateChanged, services.ErrElectionAlreadyStarted:
		return Conflict(err.Message)
	case services.ErrElectionEnded:
		return &APIError{Status: http.StatusConflict, Code: ErrCodeElectionEnded, Message: err.Message}
	case services.ErrElectionNotActive:
		return &APIError{Status: http.StatusBadRequest, Code: ErrCodeElectionNotActive, Message: err.Message}
	case services.ErrNoAccessCode:
		return NotFound(err.Message)
	default:
		return BadRequest(err.Message)
	}
}
