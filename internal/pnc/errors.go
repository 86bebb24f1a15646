package pnc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrInvalidID is returned before any request is sent when an identifier
// cannot name a single path segment
var ErrInvalidID = errors.New("invalid identifier")

// RemoteError is a failure reported by the orchestration service
type RemoteError struct {
	StatusCode int
	Type       string
	Message    string
	RequestID  string

	// Err is the transport failure when no response was received
	Err error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("remote service unreachable: %v", e.Err)
	}
	status := strings.ToLower(http.StatusText(e.StatusCode))
	if status == "" {
		status = "unexpected status"
	}
	if e.Message == "" {
		return fmt.Sprintf("remote service: %d %s", e.StatusCode, status)
	}
	return fmt.Sprintf("remote service: %d %s: %s", e.StatusCode, status, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a remote not-found failure
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// errorBody is the service's error response payload
type errorBody struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

func newRemoteError(resp *http.Response, requestID string) *RemoteError {
	re := &RemoteError{StatusCode: resp.StatusCode, RequestID: requestID}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return re
	}
	var body errorBody
	if json.Unmarshal(data, &body) == nil && (body.ErrorMessage != "" || body.ErrorType != "") {
		re.Type = body.ErrorType
		re.Message = body.ErrorMessage
		return re
	}
	re.Message = strings.TrimSpace(string(data))
	return re
}
