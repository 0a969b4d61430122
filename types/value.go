// Package types holds the small set of runtime value and schema
// primitives shared by the catalog, expression, and execution layers.
package types

import (
	"fmt"

	"github.com/vmihailenco/msgpack"

	"github.com/relnova/petrodb/errs"
)

// Kind identifies the concrete type carried by a Value or declared for a
// Column. petrodb supports only the two types needed to build key schemas
// for indexes and to drive comparison expressions.
type Kind int

const (
	Integer Kind = iota
	Varchar
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "INTEGER"
	case Varchar:
		return "VARCHAR"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged union over the supported column types. It is a plain
// struct rather than an interface so it can be copied by value and stored
// inline in tuples without an allocation per cell.
type Value struct {
	kind Kind
	i    int64
	s    string
}

func NewInteger(v int64) Value  { return Value{kind: Integer, i: v} }
func NewVarchar(v string) Value { return Value{kind: Varchar, s: v} }

func (v Value) Kind() Kind { return v.kind }

// EncodeMsgpack and DecodeMsgpack carry the unexported fields through the
// msgpack page codec, which would otherwise skip them.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeMulti(int64(v.kind), v.i, v.s)
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	var kind int64
	if err := dec.DecodeMulti(&kind, &v.i, &v.s); err != nil {
		return err
	}
	v.kind = Kind(kind)
	return nil
}

// AsInt returns the underlying int64. Calling it on a non-Integer value is
// a programming error.
func (v Value) AsInt() int64 {
	errs.Ensure(v.kind == Integer, "AsInt called on a %s value", v.kind)
	return v.i
}

// AsString returns the underlying string. Calling it on a non-Varchar
// value is a programming error.
func (v Value) AsString() string {
	errs.Ensure(v.kind == Varchar, "AsString called on a %s value", v.kind)
	return v.s
}

// CompareTo returns -1, 0, or 1 comparing v to other. Both values must
// share a Kind; comparing across kinds is a programming error, since it
// can only happen from a malformed expression tree or schema mismatch.
func (v Value) CompareTo(other Value) int {
	errs.Ensure(v.kind == other.kind, "cannot compare %s to %s", v.kind, other.kind)
	switch v.kind {
	case Integer:
		switch {
		case v.i < other.i:
			return -1
		case v.i > other.i:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case v.s < other.s:
			return -1
		case v.s > other.s:
			return 1
		default:
			return 0
		}
	}
}

// ToKey encodes v as a string that sorts identically to CompareTo's
// ordering, so a Value can be used as the K type parameter of the
// generic B+Tree (which requires cmp.Ordered, a constraint a struct like
// Value can never satisfy directly).
//
// Integers are encoded as fixed-width hex with the sign bit flipped, so
// that negative values sort before positive ones under plain string
// comparison. Varchars are encoded as-is; a length-prefixed encoding would
// be needed if the key schema ever mixed a Varchar with a following column,
// which petrodb's single-column indexes do not.
func (v Value) ToKey() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("%016x", uint64(v.i)^0x8000000000000000)
	default:
		return v.s
	}
}

func (v Value) String() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("%d", v.i)
	default:
		return v.s
	}
}
