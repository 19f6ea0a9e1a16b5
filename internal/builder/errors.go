package builder

import (
	"errors"
	"fmt"

	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
)

// ErrKind classifies build failures.
type ErrKind uint8

const (
	KindNodeKindMismatch ErrKind = iota + 1
	KindMissingEnclosingFunction
	KindUnsupportedConstruct
	KindEmptyEvaluationResult
	KindUnresolvedName
)

// Sentinels for errors.Is; every *Error unwraps to the one of its kind.
var (
	ErrNodeKindMismatch         = errors.New("node kind mismatch")
	ErrMissingEnclosingFunction = errors.New("missing enclosing function")
	ErrUnsupported              = errors.New("unsupported construct")
	ErrEmptyEvaluation          = errors.New("empty evaluation result")
	ErrUnresolvedName           = errors.New("unresolved name")
)

var kindInfo = [...]struct {
	sentinel error
	code     diag.Code
}{
	KindNodeKindMismatch:         {ErrNodeKindMismatch, diag.IRNodeKindMismatch},
	KindMissingEnclosingFunction: {ErrMissingEnclosingFunction, diag.IRMissingEnclosingFunction},
	KindUnsupportedConstruct:     {ErrUnsupported, diag.IRUnsupportedConstruct},
	KindEmptyEvaluationResult:    {ErrEmptyEvaluation, diag.IREmptyEvaluationResult},
	KindUnresolvedName:           {ErrUnresolvedName, diag.IRUnresolvedName},
}

func (k ErrKind) String() string {
	if k == 0 || int(k) >= len(kindInfo) {
		return "unknown"
	}
	return kindInfo[k].sentinel.Error()
}

// Code maps the kind to its diagnostic code.
func (k ErrKind) Code() diag.Code {
	if k == 0 || int(k) >= len(kindInfo) {
		return diag.IRInfo
	}
	return kindInfo[k].code
}

// Recoverable kinds are reported and skipped at statement level; the rest
// abort the current function pass.
func (k ErrKind) Recoverable() bool {
	return k == KindUnsupportedConstruct || k == KindUnresolvedName
}

// Error is a build failure with its location.
type Error struct {
	Kind   ErrKind
	Span   source.Span
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Kind == 0 || int(e.Kind) >= len(kindInfo) {
		if e.Err == nil {
			return nil
		}
		return []error{e.Err}
	}
	if e.Err == nil {
		return []error{kindInfo[e.Kind].sentinel}
	}
	return []error{kindInfo[e.Kind].sentinel, e.Err}
}

func newError(kind ErrKind, span source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Detail: fmt.Sprintf(format, args...)}
}

func unsupported(span source.Span, what string) *Error {
	return &Error{Kind: KindUnsupportedConstruct, Span: span, Detail: what}
}

// lookupErr turns a graph lookup failure into a located build error.
func lookupErr(err error, span source.Span) error {
	if err == nil {
		return nil
	}
	var mm *graph.KindMismatchError
	if errors.As(err, &mm) {
		return &Error{Kind: KindNodeKindMismatch, Span: span, Err: err}
	}
	if errors.Is(err, graph.ErrNoSuchNode) {
		return &Error{Kind: KindNodeKindMismatch, Span: span, Err: err}
	}
	return err
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
