package scanner

import (
	"go/ast"
	"go/parser"
	goscanner "go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"golang.org/x/tools/go/ast/inspector"
)

var goQueryMethods = map[string]struct{}{
	"Query":           {},
	"QueryContext":    {},
	"QueryRow":        {},
	"QueryRowContext": {},
	"Exec":            {},
	"ExecContext":     {},
}

var goHTTPFuncs = map[string]struct{}{
	"Get":      {},
	"Post":     {},
	"Head":     {},
	"PostForm": {},
}

// analyzeGo runs structural checks over a Go source file.
func analyzeGo(file model.SourceFile) []hit {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file.Path, file.Content, parser.SkipObjectResolution)
	if err != nil {
		line := 0
		msg := err.Error()
		if list, ok := err.(goscanner.ErrorList); ok && len(list) > 0 {
			line = list[0].Pos.Line
			msg = list[0].Msg
		}
		return []hit{{ruleID: RuleParseError, line: line, subject: msg}}
	}

	var hits []hit
	add := func(id string, pos token.Pos, subject string) {
		hits = append(hits, hit{ruleID: id, line: fset.Position(pos).Line, subject: subject})
	}

	recursive := map[*ast.FuncDecl]struct{}{}
	insp := inspector.New([]*ast.File{f})
	filter := []ast.Node{
		(*ast.ForStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.CallExpr)(nil),
		(*ast.DeferStmt)(nil),
	}

	insp.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		depth := goLoopDepth(stack)

		switch node := n.(type) {
		case *ast.ForStmt, *ast.RangeStmt:
			if depth > 0 {
				add(RuleNestedLoop, n.Pos(), strconv.Itoa(depth+1))
			}

		case *ast.DeferStmt:
			if depth > 0 {
				add(RuleDeferInLoop, node.Pos(), "defer")
			}

		case *ast.CallExpr:
			if fn := goEnclosingFunc(stack); fn != nil && isSelfCall(fn, node) {
				if _, ok := recursive[fn]; !ok {
					recursive[fn] = struct{}{}
					add(RuleRecursion, fn.Name.Pos(), fn.Name.Name)
				}
			}

			if depth == 0 {
				break
			}
			pkg, name := callName(node)
			switch {
			case pkg == "http" && has(goHTTPFuncs, name):
				add(RuleNetworkInLoop, node.Pos(), "http."+name)
			case name == "Do" && isHTTPClient(node):
				add(RuleNetworkInLoop, node.Pos(), exprString(node.Fun))
			case pkg == "time" && name == "Sleep":
				add(RuleSleepInLoop, node.Pos(), "time.Sleep")
			case pkg == "regexp" && (strings.HasPrefix(name, "MustCompile") || strings.HasPrefix(name, "Compile")):
				add(RuleRegexpInLoop, node.Pos(), "regexp."+name)
			case pkg != "" && has(goQueryMethods, name):
				add(RuleQueryInLoop, node.Pos(), exprString(node.Fun))
			}
		}
		return true
	})

	return hits
}

// goLoopDepth counts loops enclosing the last node of stack, stopping at the nearest function boundary.
// A loop counts only when the node is in its body or in the per-iteration part of a for statement.
func goLoopDepth(stack []ast.Node) int {
	depth := 0
	for i := len(stack) - 2; i >= 0; i-- {
		child := stack[i+1]
		switch loop := stack[i].(type) {
		case *ast.FuncLit, *ast.FuncDecl:
			return depth
		case *ast.ForStmt:
			if child != loop.Init {
				depth++
			}
		case *ast.RangeStmt:
			if child == loop.Body {
				depth++
			}
		}
	}
	return depth
}

func goEnclosingFunc(stack []ast.Node) *ast.FuncDecl {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn
		}
	}
	return nil
}

// isSelfCall reports whether call invokes fn itself: f(...) for functions, r.m(...) for methods with receiver r.
func isSelfCall(fn *ast.FuncDecl, call *ast.CallExpr) bool {
	switch f := call.Fun.(type) {
	case *ast.Ident:
		return fn.Recv == nil && f.Name == fn.Name.Name
	case *ast.SelectorExpr:
		if fn.Recv == nil || len(fn.Recv.List) == 0 || len(fn.Recv.List[0].Names) == 0 {
			return false
		}
		x, ok := f.X.(*ast.Ident)
		return ok && x.Name == fn.Recv.List[0].Names[0].Name && f.Sel.Name == fn.Name.Name
	}
	return false
}

// callName returns qualifier and name of the called function. pkg is the identifier before the dot
// (package or receiver variable), or empty for a plain function call.
func callName(call *ast.CallExpr) (pkg, name string) {
	switch f := call.Fun.(type) {
	case *ast.Ident:
		return "", f.Name
	case *ast.SelectorExpr:
		if x, ok := f.X.(*ast.Ident); ok {
			return x.Name, f.Sel.Name
		}
		return "_", f.Sel.Name
	}
	return "", ""
}

func isHTTPClient(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	recv := strings.ToLower(exprString(sel.X))
	return strings.HasSuffix(recv, "client")
}

func exprString(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.SelectorExpr:
		return exprString(v.X) + "." + v.Sel.Name
	case *ast.CallExpr:
		return exprString(v.Fun) + "()"
	case *ast.StarExpr:
		return exprString(v.X)
	case *ast.ParenExpr:
		return exprString(v.X)
	}
	return "expr"
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
