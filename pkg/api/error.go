package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response. The blog API answers errors with a plain-text message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%d] %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// HTTPStatus lets the error taxonomy classify the failure
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// ParseError builds an APIError from a failed response
func ParseError(resp *resty.Response) error {
	msg := strings.TrimSpace(string(resp.Body()))

	// Spring's default error body is JSON with a "message" or "error" field
	if strings.HasPrefix(msg, "{") {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err == nil {
			switch {
			case body.Message != "":
				msg = body.Message
			case body.Error != "":
				msg = body.Error
			}
		}
	}

	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

// CheckResponse turns a transport failure into a network error and a non-2xx response into an APIError
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	if !resp.IsSuccess() {
		return ParseError(resp)
	}
	return nil
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsConflict checks if the resource already exists
func IsConflict(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
