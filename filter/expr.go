package filter

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cloudagents/cloudagents"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Object fields are unknown until runtime
	options := []expr.Option{
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
	for _, name := range shadowedBuiltins(expression, c.helperFuncs) {
		options = append(options, expr.DisableBuiltin(name))
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter against an object. Objects that make the
// expression fail at runtime (missing field, wrong type) do not match.
func (f *exprFilter) Match(obj cloudagents.Object) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(obj, f.helpers))
	if err != nil {
		return false
	}

	// AsBool guarantees the result type
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// shadowedBuiltins returns the builtin names used as plain variables in
// expression, e.g. take in "take >= 2". Those refer to object fields, so the
// builtins are disabled. Calls such as len(name) are untouched. A parse
// error yields nil and is reported by expr.Compile.
func shadowedBuiltins(expression string, helpers map[string]any) []string {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil
	}

	collector := &identifierCollector{helpers: helpers, seen: make(map[string]bool)}
	ast.Walk(&tree.Node, collector)
	return collector.names
}

type identifierCollector struct {
	helpers map[string]any
	seen    map[string]bool
	names   []string
}

func (v *identifierCollector) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok || v.seen[ident.Value] {
		return
	}
	if _, isBuiltin := builtin.Index[ident.Value]; !isBuiltin {
		return
	}
	if _, isHelper := v.helpers[ident.Value]; isHelper {
		return
	}
	v.seen[ident.Value] = true
	v.names = append(v.names, ident.Value)
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["parseDate"] = parseDate
	env["daysSince"] = func(v any) int {
		t := parseDate(v)
		if t.IsZero() {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}

	// Case-insensitive text helpers; the contains/startsWith/endsWith
	// operators and lower/upper builtins are case-sensitive
	env["hasText"] = func(str, substr any) bool {
		return strings.Contains(strings.ToLower(toString(str)), strings.ToLower(toString(substr)))
	}
	env["hasPrefix"] = func(str, prefix any) bool {
		return strings.HasPrefix(strings.ToLower(toString(str)), strings.ToLower(toString(prefix)))
	}
	env["hasSuffix"] = func(str, suffix any) bool {
		return strings.HasSuffix(strings.ToLower(toString(str)), strings.ToLower(toString(suffix)))
	}

	// Synchronization code helpers
	env["stateName"] = func(code any) string {
		n, ok := toInt(code)
		if !ok {
			return "Unknown"
		}
		return cloudagents.SynchronizationState(n).String()
	}
	env["detailName"] = func(code any) string {
		n, ok := toInt(code)
		if !ok {
			return "Unknown"
		}
		return cloudagents.SynchronizationStateDetail(n).String()
	}
}

// createRuntimeEnvironment exposes the object's top-level fields as
// variables, the whole object as Object, and the helpers. Helpers win over
// fields of the same name; fields win over expr builtins.
func createRuntimeEnvironment(obj cloudagents.Object, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(obj)+len(helpers)+1)
	maps.Copy(env, obj)
	maps.Copy(env, helpers)
	env["Object"] = map[string]any(obj)
	return env
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate accepts the date formats returned by the API; zero on failure
func parseDate(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return cloudagents.Object{"v": v}.String("v")
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
