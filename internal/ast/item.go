package ast

import (
	"ctxgraph/internal/source"
)

type ItemKind uint8

const (
	ItemPragma ItemKind = iota
	ItemImport
	ItemContract
	ItemFunction
	ItemStateVar
	ItemEvent
	ItemError
	ItemStruct
	ItemEnum
	ItemUsing
)

var itemKindNames = [...]string{
	ItemPragma:   "pragma",
	ItemImport:   "import",
	ItemContract: "contract",
	ItemFunction: "function",
	ItemStateVar: "state variable",
	ItemEvent:    "event",
	ItemError:    "error declaration",
	ItemStruct:   "struct",
	ItemEnum:     "enum",
	ItemUsing:    "using directive",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "item"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type ContractKind uint8

const (
	ContractPlain ContractKind = iota
	ContractAbstract
	ContractInterface
	ContractLibrary
)

type ContractData struct {
	Kind     ContractKind
	Name     source.StringID
	NameSpan source.Span
	Bases    []source.StringID
	Members  []ItemID
}

type FnKind uint8

const (
	FnFunction FnKind = iota
	FnConstructor
	FnModifier
	FnFallback
	FnReceive
)

type Visibility uint8

const (
	VisDefault Visibility = iota
	VisPublic
	VisPrivate
	VisInternal
	VisExternal
)

type Mutability uint8

const (
	MutDefault Mutability = iota
	MutPure
	MutView
	MutPayable
)

type FnData struct {
	Kind       FnKind
	Name       source.StringID
	NameSpan   source.Span
	Params     []ParamID
	Returns    []ParamID
	Visibility Visibility
	Mutability Mutability
	Virtual    bool
	Override   bool
	Modifiers  []ExprID
	Body       StmtID // NoStmtID for declarations without body
}

// StorageLocation is the data location annotation of a variable.
type StorageLocation uint8

const (
	LocDefault StorageLocation = iota
	LocMemory
	LocStorage
	LocCalldata
)

type Param struct {
	Type     ExprID
	Location StorageLocation
	Name     source.StringID // NoStringID when unnamed
	Span     source.Span
}

type StateVarData struct {
	Type       ExprID
	Name       source.StringID
	Visibility Visibility
	Constant   bool
	Immutable  bool
	Init       ExprID
}

// OpaqueData names declarations that are parsed but carry no body here.
type OpaqueData struct {
	Name source.StringID
}

// Items manages allocation of top-level and contract-level items.
type Items struct {
	Arena     *Arena[Item]
	Contracts *Arena[ContractData]
	Fns       *Arena[FnData]
	Params    *Arena[Param]
	StateVars *Arena[StateVarData]
	Opaques   *Arena[OpaqueData]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:     NewArena[Item](capHint),
		Contracts: NewArena[ContractData](8),
		Fns:       NewArena[FnData](capHint),
		Params:    NewArena[Param](capHint),
		StateVars: NewArena[StateVarData](capHint),
		Opaques:   NewArena[OpaqueData](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewContract(span source.Span, data ContractData) ItemID {
	return i.new(ItemContract, span, i.Contracts.Allocate(data))
}

func (i *Items) Contract(id ItemID) (*ContractData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemContract {
		return nil, false
	}
	return i.Contracts.Get(uint32(it.Payload)), true
}

func (i *Items) NewFn(span source.Span, data FnData) ItemID {
	return i.new(ItemFunction, span, i.Fns.Allocate(data))
}

func (i *Items) Fn(id ItemID) (*FnData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemFunction {
		return nil, false
	}
	return i.Fns.Get(uint32(it.Payload)), true
}

func (i *Items) NewParam(p Param) ParamID {
	return ParamID(i.Params.Allocate(p))
}

func (i *Items) Param(id ParamID) *Param {
	return i.Params.Get(uint32(id))
}

func (i *Items) NewStateVar(span source.Span, data StateVarData) ItemID {
	return i.new(ItemStateVar, span, i.StateVars.Allocate(data))
}

func (i *Items) StateVar(id ItemID) (*StateVarData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemStateVar {
		return nil, false
	}
	return i.StateVars.Get(uint32(it.Payload)), true
}

// NewOpaque records pragma, import, event, error, struct, enum and using items.
func (i *Items) NewOpaque(kind ItemKind, span source.Span, name source.StringID) ItemID {
	return i.new(kind, span, i.Opaques.Allocate(OpaqueData{Name: name}))
}

func (i *Items) Opaque(id ItemID) (*OpaqueData, bool) {
	it := i.Get(id)
	if it == nil {
		return nil, false
	}
	switch it.Kind {
	case ItemContract, ItemFunction, ItemStateVar:
		return nil, false
	}
	return i.Opaques.Get(uint32(it.Payload)), true
}
