// Package value implements the literal values and comparison operators that
// conditions compare runtime quantities against: string and numeric
// literals, and indirections through the process environment.
package value

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jpl-au/igr/internal/ierr"
)

// Kind discriminates the variant of a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindEnv
)

// Value is a tagged sum of a string literal, a numeric literal, or an
// environment-variable reference resolved at use time.
type Value struct {
	kind Kind
	str  string
	num  uint64
	env  string
}

// String constructs a string-literal Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric-literal Value.
func Number(n uint64) Value { return Value{kind: KindNumber, num: n} }

// Env constructs a Value that resolves an environment variable by name.
func Env(name string) Value { return Value{kind: KindEnv, env: name} }

// IntValue resolves the Value to an unsigned integer. Env values are read
// from the process environment; a missing or non-numeric variable is an
// error, per spec error kind 7 (environment resolution failure).
func (v Value) IntValue() (uint64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindEnv:
		raw, ok := os.LookupEnv(v.env)
		if !ok {
			return 0, fmt.Errorf("%w: environment variable %q not set", ierr.ErrEnvResolution, v.env)
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: environment variable %q is not a number: %w", ierr.ErrEnvResolution, v.env, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value %q is not a number", v.str)
	}
}

// StringValue resolves the Value to its string representation.
func (v Value) StringValue() (string, error) {
	switch v.kind {
	case KindNumber:
		return strconv.FormatUint(v.num, 10), nil
	case KindEnv:
		raw, ok := os.LookupEnv(v.env)
		if !ok {
			return "", fmt.Errorf("environment variable %q not set", v.env)
		}
		return raw, nil
	default:
		return v.str, nil
	}
}

// String renders the Value the way it would appear in a parsed query.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatUint(v.num, 10)
	case KindEnv:
		return "env." + v.env
	default:
		return v.str
	}
}

// OpKind identifies a comparison operator.
type OpKind int

const (
	OpEq OpKind = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
)

func (k OpKind) symbol() string {
	switch k {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return "?"
	}
}

// Op pairs a comparison operator with the Value to compare against.
type Op struct {
	Kind  OpKind
	Value Value
}

// String renders the Op the way it would appear after a condition's "()".
func (o Op) String() string {
	return fmt.Sprintf("%s %s", o.Kind.symbol(), o.Value.String())
}

// Compare reports whether n satisfies the operator against the Op's Value.
func (o Op) Compare(n uint64) (bool, error) {
	want, err := o.Value.IntValue()
	if err != nil {
		return false, err
	}
	switch o.Kind {
	case OpEq:
		return n == want, nil
	case OpNe:
		return n != want, nil
	case OpGt:
		return n > want, nil
	case OpGte:
		return n >= want, nil
	case OpLt:
		return n < want, nil
	case OpLte:
		return n <= want, nil
	default:
		return false, fmt.Errorf("unknown operator kind %d", o.Kind)
	}
}
