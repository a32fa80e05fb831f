package ast

import (
	"encoding/json"
	"strconv"

	"github.com/gnoswap-labs/mzstk/lexer"
)

// Kind defines the node types of the syntax tree.
type Kind int

const (
	KindProgram Kind = iota
	KindPush
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindModulo
	KindStore
	KindLoad
	KindStartIf
	KindStartWhile
	KindStartFor
	KindStartFunction
	KindEqual
	KindNotEqual
	KindLess
	KindGreater
	KindLessEqual
	KindGreaterEqual
	KindAnd
	KindOr
	KindNot
	KindStart
	KindExit
)

var kindNames = [...]string{
	KindProgram:       "PROGRAM",
	KindPush:          "PUSH",
	KindAdd:           "ADD",
	KindSubtract:      "SUBTRACT",
	KindMultiply:      "MULTIPLY",
	KindDivide:        "DIVIDE",
	KindModulo:        "MODULO",
	KindStore:         "STORE",
	KindLoad:          "LOAD",
	KindStartIf:       "STARTIF",
	KindStartWhile:    "STARTWHILE",
	KindStartFor:      "STARTFOR",
	KindStartFunction: "STARTFUNCTION",
	KindEqual:         "EQUAL",
	KindNotEqual:      "NOT_EQUAL",
	KindLess:          "LESS",
	KindGreater:       "GREATER",
	KindLessEqual:     "LESS_EQUAL",
	KindGreaterEqual:  "GREATER_EQUAL",
	KindAnd:           "AND",
	KindOr:            "OR",
	KindNot:           "NOT",
	KindStart:         "START",
	KindExit:          "EXIT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsBlock reports whether k is one of the if, while, for or function blocks.
func (k Kind) IsBlock() bool {
	switch k {
	case KindStartIf, KindStartWhile, KindStartFor, KindStartFunction:
		return true
	}
	return false
}

// IsContainer reports whether nodes of kind k own children.
func (k Kind) IsContainer() bool {
	return k == KindProgram || k.IsBlock()
}

// HasValue reports whether nodes of kind k carry a payload.
func (k Kind) HasValue() bool {
	return k == KindPush || k == KindStore || k == KindLoad
}

var tokenKinds = map[lexer.Kind]Kind{
	lexer.KindPush:          KindPush,
	lexer.KindAdd:           KindAdd,
	lexer.KindSubtract:      KindSubtract,
	lexer.KindMultiply:      KindMultiply,
	lexer.KindDivide:        KindDivide,
	lexer.KindModulo:        KindModulo,
	lexer.KindStore:         KindStore,
	lexer.KindLoad:          KindLoad,
	lexer.KindStartIf:       KindStartIf,
	lexer.KindStartWhile:    KindStartWhile,
	lexer.KindStartFor:      KindStartFor,
	lexer.KindStartFunction: KindStartFunction,
	lexer.KindEqual:         KindEqual,
	lexer.KindNotEqual:      KindNotEqual,
	lexer.KindLess:          KindLess,
	lexer.KindGreater:       KindGreater,
	lexer.KindLessEqual:     KindLessEqual,
	lexer.KindGreaterEqual:  KindGreaterEqual,
	lexer.KindAnd:           KindAnd,
	lexer.KindOr:            KindOr,
	lexer.KindNot:           KindNot,
	lexer.KindStart:         KindStart,
	lexer.KindExit:          KindExit,
}

// KindOf returns the node kind produced by a token kind.
// Block closers and EOF produce no node and report false.
func KindOf(k lexer.Kind) (Kind, bool) {
	kind, ok := tokenKinds[k]
	return kind, ok
}

// Node is a node of the syntax tree. Container nodes own their children;
// leaves have none.
type Node struct {
	Kind     Kind
	Value    int // literal for PUSH, variable character code for STORE and LOAD
	Children []*Node
}

// NewProgram creates an empty root node.
func NewProgram() *Node {
	return &Node{Kind: KindProgram}
}

// FromToken creates the childless node for tok.
func FromToken(tok lexer.Token) (*Node, bool) {
	kind, ok := KindOf(tok.Kind)
	if !ok {
		return nil, false
	}
	n := &Node{Kind: kind}
	if kind.HasValue() {
		n.Value = tok.Value
	}
	return n, true
}

// Append attaches child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Label returns the node's line in a tree dump, without indentation.
func (n *Node) Label() string {
	switch n.Kind {
	case KindPush:
		return n.Kind.String() + " (" + strconv.Itoa(n.Value) + ")"
	case KindStore, KindLoad:
		return n.Kind.String() + " (" + string(rune(n.Value)) + ")"
	default:
		return n.Kind.String()
	}
}

func (n *Node) String() string {
	return Dump(n)
}

type jsonNode struct {
	Kind     string  `json:"kind"`
	Value    any     `json:"value,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// MarshalJSON encodes the node with its kind name. PUSH values are
// numbers, STORE and LOAD values are one-character strings.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{Kind: n.Kind.String(), Children: n.Children}
	switch n.Kind {
	case KindPush:
		out.Value = n.Value
	case KindStore, KindLoad:
		out.Value = string(rune(n.Value))
	}
	return json.Marshal(out)
}
