package commands

import (
	"strconv"
	"strings"
)

// Command describes one operation: a kind plus its ordered string arguments. A Command is immutable once built; the
// argument slice is copied in and out.
type Command struct {
	kind Kind
	args []string
}

// New builds a command of the given kind. Arguments are not validated until the command is evaluated.
func New(kind Kind, args ...string) Command {
	return Command{
		kind: kind,
		args: append([]string(nil), args...),
	}
}

// NewSet builds SET name value.
func NewSet(name string, value int) Command {
	return New(Set, name, strconv.Itoa(value))
}

// NewUnset builds UNSET name.
func NewUnset(name string) Command {
	return New(Unset, name)
}

func (c Command) Kind() Kind {
	return c.kind
}

// Args returns a copy of the command's arguments.
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// NumArgs returns the number of arguments.
func (c Command) NumArgs() int {
	return len(c.args)
}

// Arg returns the i-th argument, or "" if there is none.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

// String renders the command the way it would be typed.
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.kind.String()
	}
	return c.kind.String() + " " + strings.Join(c.args, " ")
}
