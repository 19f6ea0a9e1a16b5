package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	// literals
	NumberLit  // 42, 1e18, 0xff
	AddressLit // 0x followed by 40 hex digits
	StringLit  // "..." or '...'
	HexStrLit  // hex"..."

	// keywords
	KwPragma
	KwImport
	KwContract
	KwInterface
	KwLibrary
	KwAbstract
	KwIs
	KwFunction
	KwConstructor
	KwModifier
	KwFallback
	KwReceive
	KwReturns
	KwReturn
	KwEvent
	KwError
	KwStruct
	KwEnum
	KwUsing
	KwMapping
	KwIf
	KwElse
	KwWhile
	KwDo
	KwFor
	KwBreak
	KwContinue
	KwEmit
	KwRevert
	KwTry
	KwCatch
	KwAssembly
	KwUnchecked
	KwNew
	KwDelete
	KwTrue
	KwFalse
	KwPublic
	KwPrivate
	KwInternal
	KwExternal
	KwPure
	KwView
	KwPayable
	KwVirtual
	KwOverride
	KwConstant
	KwImmutable
	KwMemory
	KwStorage
	KwCalldata

	// punctuation and operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	Question
	FatArrow // =>

	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	PlusPlus
	MinusMinus
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Tilde
	Amp
	Pipe
	Caret
	Shl
	Shr
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	NumberLit:     "NumberLit",
	AddressLit:    "AddressLit",
	StringLit:     "StringLit",
	HexStrLit:     "HexStrLit",
	KwPragma:      "pragma",
	KwImport:      "import",
	KwContract:    "contract",
	KwInterface:   "interface",
	KwLibrary:     "library",
	KwAbstract:    "abstract",
	KwIs:          "is",
	KwFunction:    "function",
	KwConstructor: "constructor",
	KwModifier:    "modifier",
	KwFallback:    "fallback",
	KwReceive:     "receive",
	KwReturns:     "returns",
	KwReturn:      "return",
	KwEvent:       "event",
	KwError:       "error",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwUsing:       "using",
	KwMapping:     "mapping",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwDo:          "do",
	KwFor:         "for",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwEmit:        "emit",
	KwRevert:      "revert",
	KwTry:         "try",
	KwCatch:       "catch",
	KwAssembly:    "assembly",
	KwUnchecked:   "unchecked",
	KwNew:         "new",
	KwDelete:      "delete",
	KwTrue:        "true",
	KwFalse:       "false",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwInternal:    "internal",
	KwExternal:    "external",
	KwPure:        "pure",
	KwView:        "view",
	KwPayable:     "payable",
	KwVirtual:     "virtual",
	KwOverride:    "override",
	KwConstant:    "constant",
	KwImmutable:   "immutable",
	KwMemory:      "memory",
	KwStorage:     "storage",
	KwCalldata:    "calldata",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Colon:         ":",
	Question:      "?",
	FatArrow:      "=>",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	StarStar:      "**",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	PlusPlus:      "++",
	MinusMinus:    "--",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Bang:          "!",
	Tilde:         "~",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Shl:           "<<",
	Shr:           ">>",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
