package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindNotFound
	KindServer
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindAuth:
		return "auth error"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindValidation:
		return "validation error"
	}
	return "unknown error"
}

// Error is a failed booking action. Two errors match under errors.Is when their kinds match.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrServer     = &Error{Kind: KindServer}
	ErrValidation = &Error{Kind: KindValidation}
)

func New(kind Kind, op string, status int, err error) *Error {
	return &Error{Kind: kind, Op: op, Status: status, Err: err}
}

// FromStatus classifies a non-2xx API response.
func FromStatus(op string, status int) *Error {
	switch status {
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return New(KindAuth, op, status, nil)
	case fiber.StatusNotFound:
		return New(KindNotFound, op, status, nil)
	}
	return New(KindServer, op, status, nil)
}

func Validation(op string, fields ...string) *Error {
	return New(KindValidation, op, 0, fmt.Errorf("required: %s", strings.Join(fields, ", ")))
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns 0 for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus is the status a page is rendered with after err.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindNotFound:
		return fiber.StatusNotFound
	case KindNetwork, KindServer:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).Render("error", fiber.Map{
		"Title":   message,
		"Status":  "error",
		"Code":    status,
		"Message": message,
		"Data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

// Handler is the app's fiber.ErrorHandler. It renders the error page, or plain text if that fails too.
func Handler(context *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		code = fe.Code
	}

	var rendered error
	switch code {
	case fiber.StatusBadRequest:
		rendered = RaiseBadRequestError(context, fe.Message)
	case fiber.StatusUnauthorized:
		rendered = RaisePermissionsError(context, fe.Message)
	case fiber.StatusNotFound:
		rendered = RaiseNotFoundError(context, fe.Message)
	case fiber.StatusInternalServerError:
		rendered = RaiseInternalServerError(context, "")
	default:
		rendered = RaiseError(context, code, fe.Message, "")
	}
	if rendered != nil {
		return context.Status(code).SendString(err.Error())
	}
	return nil
}
