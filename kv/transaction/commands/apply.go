package commands

import (
	"strconv"
	"strings"

	"github.com/pingcap/errcode"
)

const (
	// ResultNull is returned by GET for a variable that does not exist.
	ResultNull = "NULL"
	// ResultInvalidArguments is returned for malformed commands.
	ResultInvalidArguments = "invalid arguments"
)

// Store is the view of a variable store that commands are evaluated against.
type Store interface {
	Set(name string, value int)
	Remove(name string)
	Exists(name string) bool
	Get(name string) (int, bool)
	CountEqualTo(value int) uint64
}

// Apply evaluates cmd against store and returns its result text, which is empty for commands with no output. Apply
// never fails; malformed commands produce ResultInvalidArguments and leave store untouched.
func Apply(cmd Command, store Store) string {
	text, _ := Evaluate(cmd, store)
	return text
}

// Evaluate is like Apply but also returns an InvalidArgumentsErr for malformed commands. The text is the same one
// Apply would return.
func Evaluate(cmd Command, store Store) (string, error) {
	switch cmd.Kind() {
	case Set:
		if cmd.NumArgs() < 2 {
			return invalid(cmd, "expected a name and a value")
		}
		value, err := strconv.Atoi(cmd.Arg(1))
		if err != nil {
			return invalid(cmd, "value is not an integer")
		}
		store.Set(cmd.Arg(0), value)
		return "", nil
	case Get:
		if cmd.NumArgs() < 1 {
			return invalid(cmd, "expected a name")
		}
		value, ok := store.Get(cmd.Arg(0))
		if !ok {
			return ResultNull, nil
		}
		return strconv.Itoa(value), nil
	case Unset:
		if cmd.NumArgs() < 1 {
			return invalid(cmd, "expected a name")
		}
		store.Remove(cmd.Arg(0))
		return "", nil
	case NumEqualTo:
		if cmd.NumArgs() < 1 {
			return invalid(cmd, "expected a value")
		}
		value, err := strconv.Atoi(cmd.Arg(0))
		if err != nil {
			return invalid(cmd, "value is not an integer")
		}
		return strconv.FormatUint(store.CountEqualTo(value), 10), nil
	}
	// Control commands are handled by the transaction stack and the interpreter.
	return "", nil
}

func invalid(cmd Command, reason string) (string, error) {
	op := errcode.Op("command." + strings.ToLower(cmd.Kind().String()))
	return ResultInvalidArguments, op.AddTo(InvalidArgumentsErr{
		Kind:   cmd.Kind(),
		Args:   cmd.Args(),
		Reason: reason,
	})
}
