// Package loopcall reports whole-document and remote calls made inside loops.
//
// The local store rewrites the full document on every write and each remote
// call is a network round trip, so per-note writes belong in one ReplaceAll
// or ReplaceAllFiles call.
package loopcall

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports store and remote calls inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "reports local store and remote calls inside loops that should be a single batch call",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// watchedMethods maps method names to the batch call that should replace them.
var watchedMethods = map[string]string{
	// LocalStore: each call loads and rewrites the document.
	"Load":   "a single Load",
	"Add":    "ReplaceAll",
	"Modify": "ReplaceAll",
	// Remote: each call is a network round trip.
	"ListNoteFiles":   "a single ListNoteFiles",
	"CreateResource":  "a single CreateResource",
	"ReplaceAllFiles": "a single ReplaceAllFiles",
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
			// Closures defined in a loop run later, not per iteration.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			batch, watched := watchedMethods[sel.Sel.Name]
			if !watched || !takesContext(pass, sel) {
				return true
			}

			pass.Reportf(call.Pos(),
				"%s called inside loop - use %s instead",
				sel.Sel.Name, batch)
			return true
		})
	})

	return nil, nil
}

// takesContext reports whether the called method's first parameter is a
// context.Context, which limits matches to I/O methods.
func takesContext(pass *analysis.Pass, sel *ast.SelectorExpr) bool {
	obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok {
		return false
	}
	sig, ok := obj.Type().(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return false
	}

	named, ok := sig.Params().At(0).Type().(*types.Named)
	if !ok {
		return false
	}
	typeName := named.Obj()
	return typeName.Pkg() != nil && typeName.Pkg().Path() == "context" && typeName.Name() == "Context"
}
