// Package analyzer reports deflog call sites that the build filter disables
// but that would still be compiled into the binary.
//
// A disabled call site costs nothing only when it sits inside an if
// statement whose condition is a false constant, such as the constants
// written by deflog-gen:
//
//	if logDebug {
//		logger.Debug(tagConnected, deflog.Str(addr))
//	}
package analyzer

import (
	"go/ast"
	"go/constant"
	"go/types"
	"os"

	"github.com/webbmaffian/go-deflog"
	"github.com/webbmaffian/go-deflog/filter"
	"github.com/webbmaffian/go-deflog/internal/codegen"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const deflogPath = "github.com/webbmaffian/go-deflog"

var Analyzer = &analysis.Analyzer{
	Name:     "deflog",
	Doc:      "report deflog call sites that are disabled by the build filter but not compiled away",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	flagFilter    optionalString
	flagCrate     string
	flagModule    string
	flagPrefix    string
	flagEnvPrefix string
)

func init() {
	Analyzer.Flags.Var(&flagFilter, "filter", "filter specification (default: $DEFLOG_LOG)")
	Analyzer.Flags.StringVar(&flagCrate, "crate", "", "crate name (default: $DEFLOG_CRATE or the last element of -module)")
	Analyzer.Flags.StringVar(&flagModule, "module", "", "module path the namespace paths are relative to (default: the package path)")
	Analyzer.Flags.StringVar(&flagPrefix, "prefix", "log", "prefix of the generated constants")
	Analyzer.Flags.StringVar(&flagEnvPrefix, "env-prefix", filter.DefaultEnvPrefix, "prefix of the environment variables")
}

// optionalString tells an empty flag apart from an absent one.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string {
	return s.value
}

func (s *optionalString) Set(v string) error {
	s.value, s.set = v, true
	return nil
}

var callSeverities = map[string]deflog.Severity{
	"Trace":   deflog.TRACE,
	"Debug":   deflog.DEBUG,
	"Info":    deflog.INFO,
	"Warn":    deflog.WARN,
	"Error":   deflog.ERROR,
	"Dbg":     deflog.TRACE,
	"DbgHere": deflog.TRACE,
}

func run(pass *analysis.Pass) (any, error) {
	module := flagModule

	if module == "" {
		module = pass.Pkg.Path()
	}

	crate := flagCrate

	if crate == "" {
		crate = os.Getenv(flagEnvPrefix + "_CRATE")
	}

	if crate == "" {
		crate = filter.DefaultCrate(module)
	}

	opts := []filter.Option{filter.WithEnvPrefix(flagEnvPrefix), filter.WithCrate(crate)}

	if flagFilter.set {
		opts = append(opts, filter.WithSpec(flagFilter.value))
	}

	f, err := filter.FromEnv(opts...)

	if err != nil {
		return nil, err
	}

	namespace := filter.NamespacePath(crate, module, pass.Pkg.Path())
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		call := n.(*ast.CallExpr)
		method, ok := loggerMethod(pass, call)

		if !ok {
			if method, ok = dbgFunc(pass, call); !ok {
				return true
			}
		}

		sev, known := callSeverities[method]

		if !known && (method == "Log" || method == "Write") && len(call.Args) > 0 {
			sev, known = constSeverity(pass, call.Args[0])

			if !known {
				pass.Reportf(call.Args[0].Pos(), "severity passed to %s is not constant, so the call cannot be removed at build time", method)
				return true
			}
		}

		if !known || f.Enabled(sev, namespace) || guarded(pass, stack) {
			return true
		}

		pass.Reportf(call.Pos(), "%s call at %s is disabled in %s but still compiled; guard it with \"if %s\"",
			method, sev, namespace, codegen.ConstName(flagPrefix, sev))

		return true
	})

	return nil, nil
}

// loggerMethod returns the name of the method called when call is a method
// call on a deflog Logger.
func loggerMethod(pass *analysis.Pass, call *ast.CallExpr) (name string, ok bool) {
	fun, ok := call.Fun.(*ast.SelectorExpr)

	if !ok {
		return
	}

	sel := pass.TypesInfo.Selections[fun]

	if sel == nil || sel.Kind() != types.MethodVal {
		return "", false
	}

	recv := sel.Recv()

	if ptr, isPtr := recv.(*types.Pointer); isPtr {
		recv = ptr.Elem()
	}

	named, isNamed := recv.(*types.Named)

	if !isNamed {
		return "", false
	}

	obj := named.Obj()

	if obj.Pkg() == nil || obj.Pkg().Path() != deflogPath || obj.Name() != "Logger" {
		return "", false
	}

	return fun.Sel.Name, true
}

// dbgFunc returns the name of the function called when call is deflog.Dbg or
// deflog.DbgHere, with or without explicit type arguments.
func dbgFunc(pass *analysis.Pass, call *ast.CallExpr) (name string, ok bool) {
	fun := call.Fun

	switch ix := fun.(type) {
	case *ast.IndexExpr:
		fun = ix.X
	case *ast.IndexListExpr:
		fun = ix.X
	}

	var id *ast.Ident

	switch fn := fun.(type) {
	case *ast.SelectorExpr:
		id = fn.Sel
	case *ast.Ident:
		id = fn
	default:
		return
	}

	obj, isFunc := pass.TypesInfo.Uses[id].(*types.Func)

	if !isFunc || obj.Pkg() == nil || obj.Pkg().Path() != deflogPath {
		return "", false
	}

	switch obj.Name() {
	case "Dbg", "DbgHere":
		return obj.Name(), true
	}

	return "", false
}

func constSeverity(pass *analysis.Pass, expr ast.Expr) (sev deflog.Severity, ok bool) {
	tv, found := pass.TypesInfo.Types[expr]

	if !found || tv.Value == nil || tv.Value.Kind() != constant.Int {
		return
	}

	v, exact := constant.Uint64Val(tv.Value)
	sev = deflog.Severity(v)

	return sev, exact && v <= uint64(deflog.ERROR)
}

// guarded reports whether the innermost enclosing statements include an if
// statement with a constant false condition, with the call in its body.
func guarded(pass *analysis.Pass, stack []ast.Node) bool {
	for i := len(stack) - 1; i > 0; i-- {
		ifStmt, ok := stack[i-1].(*ast.IfStmt)

		if !ok || stack[i] != ifStmt.Body {
			continue
		}

		tv, found := pass.TypesInfo.Types[ifStmt.Cond]

		if found && tv.Value != nil && tv.Value.Kind() == constant.Bool && !constant.BoolVal(tv.Value) {
			return true
		}
	}

	return false
}
