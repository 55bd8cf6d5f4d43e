package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// Kind classifies a failed API call so callers can react without looking at
// message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnavailable
	KindUnauthorized
	KindInvalidCredentials
	KindUserNotFound
	KindEmailTaken
	KindUsernameTaken
	KindForbidden
	KindNotFound
	KindValidation
	KindRateLimited
	KindServer
	KindDecode
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindUnavailable:        "unavailable",
	KindUnauthorized:       "unauthorized",
	KindInvalidCredentials: "invalid credentials",
	KindUserNotFound:       "user not found",
	KindEmailTaken:         "email taken",
	KindUsernameTaken:      "username taken",
	KindForbidden:          "forbidden",
	KindNotFound:           "not found",
	KindValidation:         "validation",
	KindRateLimited:        "rate limited",
	KindServer:             "server error",
	KindDecode:             "bad response",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsAuth reports whether the kind means the session is no longer usable.
func (k Kind) IsAuth() bool {
	return k == KindUnauthorized
}

// Error is returned by every Client method for remote failures.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnavailable        = &Error{Kind: KindUnavailable}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrNotFound           = &Error{Kind: KindNotFound}
)

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var codeKinds = map[string]Kind{
	common.CodeUnauthorized:       KindUnauthorized,
	common.CodeInvalidCredentials: KindInvalidCredentials,
	common.CodeUserNotFound:       KindUserNotFound,
	common.CodeEmailTaken:         KindEmailTaken,
	common.CodeUsernameTaken:      KindUsernameTaken,
	common.CodeForbidden:          KindForbidden,
	common.CodeNotFound:           KindNotFound,
	common.CodeValidation:         KindValidation,
	common.CodeRateLimited:        KindRateLimited,
	common.CodeInternal:           KindServer,
}

// legacyMessages maps error texts of servers that send no code.
var legacyMessages = []struct {
	text string
	kind Kind
}{
	{common.MsgInvalidPassword, KindInvalidCredentials},
	{common.MsgUserNotFound, KindUserNotFound},
	{common.MsgEmailTaken, KindEmailTaken},
	{common.MsgUsernameTaken, KindUsernameTaken},
}

func statusKind(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// classify picks the most specific kind available: the structured code,
// then a known message, then the HTTP status.
func classify(status int, code, message string) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	lower := strings.ToLower(message)
	for _, m := range legacyMessages {
		if strings.Contains(lower, strings.ToLower(m.text)) {
			return m.kind
		}
	}
	return statusKind(status)
}
