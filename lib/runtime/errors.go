package runtime

import "fmt"

// ErrorKind enumerates the Python exception types the runtime can raise.
type ErrorKind uint8

const (
	TypeError ErrorKind = iota
	ValueError
	IndexError
	ZeroDivisionError
	AttributeError
)

var errorKindNames = [...]string{
	TypeError:         "TypeError",
	ValueError:        "ValueError",
	IndexError:        "IndexError",
	ZeroDivisionError: "ZeroDivisionError",
	AttributeError:    "AttributeError",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a raised Python exception. It is immutable once constructed.
type Error struct {
	kind    ErrorKind
	message string
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Kind returns the exception type.
func (e *Error) Kind() ErrorKind { return e.kind }

// Message returns the exception message.
func (e *Error) Message() string { return e.message }

// Error formats the error the way the top-level handler reports it.
func (e *Error) Error() string {
	return e.kind.String() + ": " + e.message
}

// Raise panics with a new *Error. Generated code never recovers; the panic
// unwinds to Main.
func Raise(kind ErrorKind, format string, args ...any) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	panic(NewError(kind, format))
}

// Catch runs fn and returns the *Error it raised, or nil. Panics that are not
// *Error keep unwinding.
func Catch(fn func()) (err *Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

// InternalError signals a violated runtime contract or a construct the
// runtime does not support yet. It is never reported as a Python exception.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "compy runtime: " + e.Message
}

func notSupported(format string, args ...any) {
	panic(&InternalError{Message: "not yet supported: " + fmt.Sprintf(format, args...)})
}
