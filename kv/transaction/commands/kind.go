package commands

import "strings"

// Kind identifies the operation a Command performs.
type Kind int

// The numeric values follow the interpreter's command-name table.
const (
	Null Kind = iota
	Set
	Get
	Unset
	NumEqualTo
	End
	Commit
	Rollback
	Begin
)

var kindNames = [...]string{
	Null:       "NULL",
	Set:        "SET",
	Get:        "GET",
	Unset:      "UNSET",
	NumEqualTo: "NUMEQUALTO",
	End:        "END",
	Commit:     "COMMIT",
	Rollback:   "ROLLBACK",
	Begin:      "BEGIN",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// ParseKind looks up a command name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[strings.ToUpper(name)]
	return k, ok
}

// Kinds returns every known kind in table order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// IsControl reports whether the kind is handled by the transaction stack or the interpreter rather than evaluated
// against the store.
func (k Kind) IsControl() bool {
	switch k {
	case Begin, Commit, Rollback, End, Null:
		return true
	}
	return false
}
