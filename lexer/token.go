package lexer

import "strconv"

// Kind defines the type of a token
type Kind int

const (
	KindPush Kind = iota
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindModulo
	KindStore
	KindLoad
	KindStartIf
	KindEndIf
	KindStartWhile
	KindEndWhile
	KindStartFor
	KindEndFor
	KindStartFunction
	KindEndFunction
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
	KindEOF
)

var kindNames = [...]string{
	KindPush:          "PUSH",
	KindAdd:           "ADD",
	KindSubtract:      "SUBTRACT",
	KindMultiply:      "MULTIPLY",
	KindDivide:        "DIVIDE",
	KindModulo:        "MODULO",
	KindStore:         "STORE",
	KindLoad:          "LOAD",
	KindStartIf:       "STARTIF",
	KindEndIf:         "ENDIF",
	KindStartWhile:    "STARTWHILE",
	KindEndWhile:      "ENDWHILE",
	KindStartFor:      "STARTFOR",
	KindEndFor:        "ENDFOR",
	KindStartFunction: "STARTFUNCTION",
	KindEndFunction:   "ENDFUNCTION",
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
	KindEOF:           "EOF",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsBlockStart reports whether k opens a block.
func (k Kind) IsBlockStart() bool {
	switch k {
	case KindStartIf, KindStartWhile, KindStartFor, KindStartFunction:
		return true
	}
	return false
}

// IsBlockEnd reports whether k closes a block.
func (k Kind) IsBlockEnd() bool {
	switch k {
	case KindEndIf, KindEndWhile, KindEndFor, KindEndFunction:
		return true
	}
	return false
}

// Closer returns the kind that closes the block opened by k.
// The second result is false when k does not open a block.
func (k Kind) Closer() (Kind, bool) {
	switch k {
	case KindStartIf:
		return KindEndIf, true
	case KindStartWhile:
		return KindEndWhile, true
	case KindStartFor:
		return KindEndFor, true
	case KindStartFunction:
		return KindEndFunction, true
	}
	return k, false
}

// Token represents a lexical token
type Token struct {
	Kind  Kind
	Value int // literal for PUSH, variable character code for STORE and LOAD
	Pos   int // byte offset of the first character in the source
}

func (t Token) String() string {
	switch t.Kind {
	case KindPush:
		return t.Kind.String() + " " + strconv.Itoa(t.Value)
	case KindStore, KindLoad:
		return t.Kind.String() + " " + string(rune(t.Value))
	default:
		return t.Kind.String()
	}
}
