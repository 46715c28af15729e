package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the runtime form of an evaluated expression. The set of values is
// closed: Integer, String, Boolean, List and Instance.
type Value interface {
	// Display renders the value the way yap prints it
	Display() string
	// TypeName names the value's type in diagnostics
	TypeName() string
	value()
}

// Integer is a signed 64-bit integer.
type Integer int64

// String is an immutable string value.
type String string

// Boolean is sigma (true) or ohio (false).
type Boolean bool

// List is an ordered sequence of values.
type List []Value

// Instance refers to an object in the interpreter's instance arena.
type Instance struct {
	ClassName string
	ID        uint64
}

func (Integer) value()  {}
func (String) value()   {}
func (Boolean) value()  {}
func (List) value()     {}
func (Instance) value() {}

func (v Integer) Display() string { return strconv.FormatInt(int64(v), 10) }
func (v String) Display() string  { return string(v) }

func (v Boolean) Display() string {
	if v {
		return "sigma"
	}
	return "ohio"
}

func (v List) Display() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Instance) Display() string { return fmt.Sprintf("<%s#%d>", v.ClassName, v.ID) }

func (Integer) TypeName() string  { return "Integer" }
func (String) TypeName() string   { return "String" }
func (Boolean) TypeName() string  { return "Boolean" }
func (List) TypeName() string     { return "List" }
func (Instance) TypeName() string { return "Instance" }

// Truthy reports whether v counts as true in a condition. Only the boolean
// false literal is false; 0, "" and [] are all true.
func Truthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}
