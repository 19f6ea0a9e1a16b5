package parser

import (
	"fmt"
	"strings"
	"testing"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sol", []byte(input))
	bag := diag.NewBag(100)
	builder := ast.NewBuilder(0)

	res := ParseFile(fs.Get(fileID), builder, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	return builder, res.File, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// onlyFn returns the single function of the single contract in the file.
func onlyFn(t *testing.T, b *ast.Builder, file ast.FileID) *ast.FnData {
	t.Helper()
	items := b.File(file).Items
	for _, it := range items {
		c, ok := b.Items.Contract(it)
		if !ok {
			continue
		}
		for _, m := range c.Members {
			if fn, ok := b.Items.Fn(m); ok {
				return fn
			}
		}
	}
	t.Fatalf("no function in %d items", len(items))
	return nil
}

func bodyStmts(t *testing.T, b *ast.Builder, fn *ast.FnData) []ast.StmtID {
	t.Helper()
	blk, ok := b.Stmts.Block(fn.Body)
	if !ok {
		t.Fatal("function has no body")
	}
	return blk.Stmts
}

// render prints an expression tree in a compact prefix form.
func render(b *ast.Builder, id ast.ExprID) string {
	if !id.IsValid() {
		return "_"
	}
	e := b.Exprs
	switch b.Exprs.Get(id).Kind {
	case ast.ExprIdent:
		d, _ := e.Ident(id)
		return b.Name(d.Name)
	case ast.ExprNumber:
		d, _ := e.Number(id)
		if d.Unit != "" {
			return d.Value + " " + d.Unit
		}
		return d.Value
	case ast.ExprBool:
		d, _ := e.Bool(id)
		return fmt.Sprint(d.Value)
	case ast.ExprString:
		d, _ := e.StringLit(id)
		var sb strings.Builder
		for _, part := range d.Parts {
			sb.WriteString(part.Value)
		}
		return fmt.Sprintf("%q", sb.String())
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, render(b, d.Left), render(b, d.Right))
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		if d.Op == ast.OpPostInc || d.Op == ast.OpPostDec {
			return fmt.Sprintf("(%s post%s)", render(b, d.Operand), d.Op)
		}
		return fmt.Sprintf("(%s %s)", d.Op, render(b, d.Operand))
	case ast.ExprTernary:
		d, _ := e.Ternary(id)
		return fmt.Sprintf("(? %s %s %s)", render(b, d.Cond), render(b, d.Then), render(b, d.Else))
	case ast.ExprCall:
		d, _ := e.Call(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = render(b, a)
			if i < len(d.Names) {
				args[i] = b.Name(d.Names[i]) + ": " + args[i]
			}
		}
		return fmt.Sprintf("%s(%s)", render(b, d.Callee), strings.Join(args, ", "))
	case ast.ExprIndex:
		d, _ := e.Index(id)
		if !d.Index.IsValid() {
			return render(b, d.Base) + "[]"
		}
		return fmt.Sprintf("%s[%s]", render(b, d.Base), render(b, d.Index))
	case ast.ExprMember:
		d, _ := e.Member(id)
		return render(b, d.Base) + "." + b.Name(d.Name)
	case ast.ExprElementaryType:
		d, _ := e.ElementaryType(id)
		if d.Payable {
			return d.Name + " payable"
		}
		return d.Name
	case ast.ExprTuple:
		d, _ := e.Tuple(id)
		parts := make([]string, len(d.Elems))
		for i, el := range d.Elems {
			parts[i] = render(b, el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ast.ExprNew:
		d, _ := e.Alloc(id)
		return "new " + render(b, d.Type)
	case ast.ExprMapping:
		d, _ := e.Mapping(id)
		return fmt.Sprintf("mapping(%s => %s)", render(b, d.Key), render(b, d.Value))
	case ast.ExprAddress:
		d, _ := e.Address(id)
		return d.Value
	default:
		return "<" + b.Exprs.Get(id).Kind.String() + ">"
	}
}
