// Package cell defines the tagged heap cell, functor and register-identifier
// types shared by the machine and compiler.
package cell

import "fmt"

// Functor identifies a compound term's name and arity. Equality is
// structural; two functors are the same iff both fields match.
type Functor struct {
	Name  string
	Arity int
}

func (f Functor) String() string {
	return fmt.Sprintf("%s/%d", f.Name, f.Arity)
}

// Tag discriminates the three cell variants.
type Tag uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type Tag -output tag_string.go

const (
	RefTag Tag = iota
	StrTag
	FuncTag
)

// Cell is a tagged heap cell. Exactly one of the variant-specific fields is
// meaningful, selected by Tag:
//
//   - RefTag: Ref holds the heap address this reference cell denotes. When
//     Ref equals the cell's own heap index, the variable is unbound.
//   - StrTag: Str holds the heap address of the Func cell that begins the
//     structure (i.e. heap[Str] is a Func cell, followed by Arity argument
//     cells).
//   - FuncTag: Func holds the functor descriptor. A Func cell only ever
//     appears immediately following a Str cell, or standing alone to denote
//     a nullary atom.
type Cell struct {
	Tag  Tag
	Ref  int
	Str  int
	Func Functor
}

// NewRef creates an unbound or bound reference cell pointing at addr.
func NewRef(addr int) Cell {
	return Cell{Tag: RefTag, Ref: addr}
}

// NewStr creates a structure-pointer cell pointing at the Func descriptor at
// funcAddr.
func NewStr(funcAddr int) Cell {
	return Cell{Tag: StrTag, Str: funcAddr}
}

// NewFunc creates a functor-descriptor cell.
func NewFunc(f Functor) Cell {
	return Cell{Tag: FuncTag, Func: f}
}

// IsRef reports whether the cell is a Ref cell.
func (c Cell) IsRef() bool { return c.Tag == RefTag }

// IsStr reports whether the cell is a Str cell.
func (c Cell) IsStr() bool { return c.Tag == StrTag }

// IsFunc reports whether the cell is a Func cell.
func (c Cell) IsFunc() bool { return c.Tag == FuncTag }

func (c Cell) String() string {
	switch c.Tag {
	case RefTag:
		return fmt.Sprintf("REF(%d)", c.Ref)
	case StrTag:
		return fmt.Sprintf("STR(%d)", c.Str)
	case FuncTag:
		return fmt.Sprintf("FUNC(%s)", c.Func)
	default:
		return "INVALID-CELL"
	}
}

// Kind is the register file a register identifier lives in.
type Kind uint8

const (
	// Temp registers live in the argument/temporary register file (X).
	Temp Kind = iota
	// Perm registers live in the current environment frame (Y).
	Perm
)

// Reg is a register identifier: either a temporary X(i) or a permanent
// Y(i), both 1-indexed as in spec.md §3.
type Reg struct {
	Kind Kind
	N    int
}

// X constructs a temporary register identifier.
func X(n int) Reg { return Reg{Kind: Temp, N: n} }

// Y constructs a permanent register identifier.
func Y(n int) Reg { return Reg{Kind: Perm, N: n} }

func (r Reg) String() string {
	if r.Kind == Perm {
		return fmt.Sprintf("Y%d", r.N)
	}

	return fmt.Sprintf("X%d", r.N)
}

// IsTemp reports whether r is a temporary (X) register.
func (r Reg) IsTemp() bool { return r.Kind == Temp }

// IsPerm reports whether r is a permanent (Y) register.
func (r Reg) IsPerm() bool { return r.Kind == Perm }
