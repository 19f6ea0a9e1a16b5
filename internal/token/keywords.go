package token

var keywords = map[string]Kind{
	"pragma":      KwPragma,
	"import":      KwImport,
	"contract":    KwContract,
	"interface":   KwInterface,
	"library":     KwLibrary,
	"abstract":    KwAbstract,
	"is":          KwIs,
	"function":    KwFunction,
	"constructor": KwConstructor,
	"modifier":    KwModifier,
	"fallback":    KwFallback,
	"receive":     KwReceive,
	"returns":     KwReturns,
	"return":      KwReturn,
	"event":       KwEvent,
	"error":       KwError,
	"struct":      KwStruct,
	"enum":        KwEnum,
	"using":       KwUsing,
	"mapping":     KwMapping,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"do":          KwDo,
	"for":         KwFor,
	"break":       KwBreak,
	"continue":    KwContinue,
	"emit":        KwEmit,
	"revert":      KwRevert,
	"try":         KwTry,
	"catch":       KwCatch,
	"assembly":    KwAssembly,
	"unchecked":   KwUnchecked,
	"new":         KwNew,
	"delete":      KwDelete,
	"true":        KwTrue,
	"false":       KwFalse,
	"public":      KwPublic,
	"private":     KwPrivate,
	"internal":    KwInternal,
	"external":    KwExternal,
	"pure":        KwPure,
	"view":        KwView,
	"payable":     KwPayable,
	"virtual":     KwVirtual,
	"override":    KwOverride,
	"constant":    KwConstant,
	"immutable":   KwImmutable,
	"memory":      KwMemory,
	"storage":     KwStorage,
	"calldata":    KwCalldata,
}

// LookupKeyword maps an identifier to its keyword kind.
// "error" and "revert" are contextual in Solidity but reserved here.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
