package dbx

import (
	"errors"

	tk "github.com/quintans/toolkit"
)

const FAULT_INVALID_HANDLE = "invalid-handle"
const FAULT_SEQUENCE = "sequence-error"
const FAULT_OUT_OF_RANGE = "out-of-range"
const FAULT_NO_MEMORY = "no-memory"
const FAULT_PREPARE = "prepare-error"

var _ error = (*StatementFail)(nil)

// StatementFail is the failure recorded in a statement error slot.
type StatementFail struct {
	*tk.Fail
	// Func is the operation that raised the failure
	Func string
	// Cause is the lower level error, if any
	Cause error
}

func NewStatementFail(code string, message string, fn string) *StatementFail {
	fail := new(StatementFail)
	fail.Fail = new(tk.Fail)
	fail.Fail.Code = code
	fail.Fail.Message = message
	fail.Func = fn
	return fail
}

func (f *StatementFail) WithCause(cause error) *StatementFail {
	f.Cause = cause
	return f
}

// Unwrap exposes the lower level error to errors.Is and errors.As.
func (f *StatementFail) Unwrap() error {
	return f.Cause
}

// IsFail reports whether err is a *StatementFail with the given code.
func IsFail(err error, code string) bool {
	var fail *StatementFail
	if errors.As(err, &fail) {
		return fail.Fail != nil && fail.Fail.Code == code
	}
	return false
}
