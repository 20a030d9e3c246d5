package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkUnavailable
	KindValidation
	KindAuth
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method.
//
// StatusCode is zero when no response was received. Detail and Message carry
// the backend body's "detail" and "message" fields verbatim when present.
type Error struct {
	Kind             Kind
	StatusCode       int
	Detail           json.RawMessage
	Message          string
	FormattedMessage string
	Err              error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNetworkUnavailable:
		return "Network Error"
	case e.StatusCode != 0:
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the subset of a FastAPI error body the client understands
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Err: errors.New(msg)}
}

// transportError classifies a failure where no HTTP response was received
func transportError(baseURL string, err error) *Error {
	if isUnreachable(err) {
		return &Error{
			Kind:             KindNetworkUnavailable,
			FormattedMessage: fmt.Sprintf("Não foi possível conectar ao servidor (%s). Verifique se o backend está em execução.", baseURL),
			Err:              err,
		}
	}
	return &Error{Kind: KindUnknown, Err: err}
}

func isUnreachable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// statusError builds an Error from a non-2xx response body
func statusError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if len(parsed.Detail) > 0 && string(parsed.Detail) != "null" {
			e.Detail = parsed.Detail
		}
		e.Message = parsed.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
	case status >= 500:
		e.Kind = KindServer
	case status >= 400 && detailIsList(e.Detail):
		e.Kind = KindValidation
	case status >= 400:
		e.Kind = KindServer
	default:
		e.Kind = KindUnknown
	}
	return e
}

func detailIsList(detail json.RawMessage) bool {
	var issues []validationIssue
	return len(detail) > 0 && json.Unmarshal(detail, &issues) == nil && issues != nil
}
