package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/gymcoach/internal/pkg/httpx"
)

// GenericFailure is what views show for any generation failure. The
// distinct kinds only reach the logs.
const GenericFailure = "Failed to generate. Please try again."

const defaultRejection = "the coach could not complete the request"

// InvalidInputError is a local precondition failure. No request was sent.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return "invalid input"
	}
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NetworkError is a non-2xx response or a transport failure. StatusCode is 0
// when no response arrived.
type NetworkError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return "network error"
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API error: %v", opLabel(e.Op), e.Err)
	}
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d %s", opLabel(e.Op), e.StatusCode, status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) HTTPStatusCode() int { return e.StatusCode }

func (e *NetworkError) Retryable() bool { return httpx.IsRetryableError(e) }

// SchemaError means the body arrived but lacked the required structure.
type SchemaError struct {
	Op     string
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error"
	}
	if e.Path == "" {
		return fmt.Sprintf("%s response invalid: %s", opLabel(e.Op), e.Reason)
	}
	return fmt.Sprintf("%s response invalid: %s: %s", opLabel(e.Op), e.Path, e.Reason)
}

// RejectedError is a wrapped response with success=false.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	if e == nil {
		return "rejected"
	}
	return fmt.Sprintf("%s rejected: %s", opLabel(e.Op), e.Message)
}

const (
	KindInvalidInput = "invalid_input"
	KindNetwork      = "network"
	KindSchema       = "schema"
	KindRejected     = "rejected"
	KindCanceled     = "canceled"
	KindUnknown      = "unknown"
)

// Kind classifies err for logs, span attributes and API error codes.
func Kind(err error) string {
	var (
		inv *InvalidInputError
		net *NetworkError
		sch *SchemaError
		rej *RejectedError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inv):
		return KindInvalidInput
	case errors.As(err, &sch):
		return KindSchema
	case errors.As(err, &rej):
		return KindRejected
	case errors.As(err, &net):
		if net.StatusCode == 0 && isCanceled(net.Err) {
			return KindCanceled
		}
		return KindNetwork
	default:
		return KindUnknown
	}
}

// UserMessage returns the text a view should display for err. Input errors
// keep their reason; every other failure collapses to GenericFailure.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		if inv.Reason != "" {
			return inv.Reason
		}
		return "invalid input"
	}
	return GenericFailure
}

func opLabel(op string) string {
	switch op {
	case OpMealPlan:
		return "Meal planner"
	case OpWorkoutPlan:
		return "Workout planner"
	case OpFoodScan:
		return "Food scanner"
	case OpChat:
		return "Chat"
	default:
		if op == "" {
			return "Coach"
		}
		return op
	}
}
