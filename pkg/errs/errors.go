package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusConflict               = http.StatusConflict
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusUnsupportedMediaType   = http.StatusUnsupportedMediaType
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrUserSuspended           = errors.New("User is suspended")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email address already in use")
	ErrClientAlreadyExists     = errors.New("User already has a client")
	ErrArtistAlreadyExists     = errors.New("User already has an artist")
	ErrFileTooBig              = errors.New("Entity too large")
	ErrUnsupportedMediaType    = errors.New("Unsupported media type")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrUnauthorized:            ErrStatusUnauthorized,
	ErrUserSuspended:           ErrStatusUnauthorized,
	ErrNotFound:                ErrStatusNotFound,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusConflict,
	ErrClientAlreadyExists:     ErrStatusConflict,
	ErrArtistAlreadyExists:     ErrStatusConflict,
	ErrFileTooBig:              ErrStatusFileSizeExceedingLimit,
	ErrUnsupportedMediaType:    ErrStatusUnsupportedMediaType,
}

// GetErrorStatusCode maps err, or any sentinel it wraps, to an HTTP status.
func GetErrorStatusCode(err error) int {
	if code, ok := errorMap[err]; ok {
		return code
	}

	for sentinel, code := range errorMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	return ErrStatusInternalServer
}

// PublicMessage is the message shown to API clients. Errors that do not wrap
// a known sentinel are reported as internal errors.
func PublicMessage(err error) string {
	if _, ok := errorMap[err]; ok {
		return err.Error()
	}

	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}

	return ErrInternalServer.Error()
}
