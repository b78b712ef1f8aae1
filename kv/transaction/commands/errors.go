package commands

import (
	"fmt"

	"github.com/pingcap/errcode"
)

var (
	// InvalidArgumentsCode is returned for a wrong argument count or a non-numeric literal where an integer is required.
	InvalidArgumentsCode = errcode.InvalidInputCode.Child("input.arguments")
	// UnknownCommandCode is returned when a name is not in the command table.
	UnknownCommandCode = errcode.InvalidInputCode.Child("input.command")
)

var _ errcode.ErrorCode = (*InvalidArgumentsErr)(nil) // assert implements interface
var _ errcode.ErrorCode = (*UnknownCommandErr)(nil)   // assert implements interface

// InvalidArgumentsErr reports a malformed command. The store is never modified when it is returned.
type InvalidArgumentsErr struct {
	Kind   Kind     `json:"kind"`
	Args   []string `json:"args"`
	Reason string   `json:"reason"`
}

func (e InvalidArgumentsErr) Error() string {
	return fmt.Sprintf("invalid arguments %q for %s: %s", e.Args, e.Kind, e.Reason)
}

// Code returns InvalidArgumentsCode
func (e InvalidArgumentsErr) Code() errcode.Code { return InvalidArgumentsCode }

// UnknownCommandErr reports a command name missing from the command table.
type UnknownCommandErr struct {
	Name string `json:"name"`
}

func (e UnknownCommandErr) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Code returns UnknownCommandCode
func (e UnknownCommandErr) Code() errcode.Code { return UnknownCommandCode }

// IsInvalidArguments reports whether err carries InvalidArgumentsCode.
func IsInvalidArguments(err error) bool {
	ec, ok := err.(errcode.ErrorCode)
	return ok && ec.Code().CodeStr() == InvalidArgumentsCode.CodeStr()
}
