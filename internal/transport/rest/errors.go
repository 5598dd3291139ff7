package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed request. Callers that only need a display string
// can use ErrorMessage; kind checks go through IsKind.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not-found"
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
	KindUnexpected Kind = "unexpected"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func IsKind(err error, kind Kind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// ErrorMessage returns the display-ready message for any error coming out of
// the adapter or a slice operation.
func ErrorMessage(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

// NotCached marks a client-side cache miss during a read-modify-write update.
func NotCached(resource, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %s not found in local cache", resource, id),
	}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest:
		return KindValidation
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindUnexpected
	default:
		return KindUnexpected
	}
}

func defaultMessage(kind Kind, status int) string {
	switch kind {
	case KindAuth:
		return "authentication required"
	case KindForbidden:
		return "you are not allowed to perform this action"
	case KindNotFound:
		return "the requested resource was not found"
	case KindValidation:
		return "the request was rejected as invalid"
	case KindServer:
		return "the server failed to process the request"
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}

// errorBody covers the wire error shapes the backends emit: a flat message
// field or a nested error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorFromResponse(status int, body []byte) *Error {
	kind := kindForStatus(status)
	message := defaultMessage(kind, status)
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			if eb.Message != "" {
				message = eb.Message
			} else if eb.Error != nil && eb.Error.Message != "" {
				message = eb.Error.Message
			}
		}
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "could not reach the server: " + err.Error()}
}

func unexpectedError(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected response: " + err.Error()}
}
