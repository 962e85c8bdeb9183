// Package stringconcat reports repeated string concatenation in loops.
package stringconcat

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports `s += x` and `s = s + x` on strings inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "stringconcat",
	Doc:      "reports quadratic string concatenation inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			assign, ok := n.(*ast.AssignStmt)
			if !ok || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
				return true
			}
			if !isStringType(pass, assign.Lhs[0]) {
				return true
			}

			if assign.Tok == token.ADD_ASSIGN || selfAppend(assign) {
				pass.Reportf(assign.Pos(),
					"string concatenation in loop - use strings.Builder")
			}
			return true
		})
	})

	return nil, nil
}

// selfAppend matches `s = s + ...`.
func selfAppend(assign *ast.AssignStmt) bool {
	if assign.Tok != token.ASSIGN {
		return false
	}
	lhs, ok := assign.Lhs[0].(*ast.Ident)
	if !ok {
		return false
	}
	bin, ok := assign.Rhs[0].(*ast.BinaryExpr)
	if !ok || bin.Op != token.ADD {
		return false
	}
	first, ok := leftmost(bin).(*ast.Ident)
	return ok && first.Name == lhs.Name
}

func leftmost(expr ast.Expr) ast.Expr {
	for {
		bin, ok := expr.(*ast.BinaryExpr)
		if !ok || bin.Op != token.ADD {
			return expr
		}
		expr = bin.X
	}
}

func isStringType(pass *analysis.Pass, expr ast.Expr) bool {
	tv := pass.TypesInfo.TypeOf(expr)
	if tv == nil {
		return false
	}

	basic, ok := tv.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	return basic.Kind() == types.String
}
