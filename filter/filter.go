package filter

import (
	"github.com/s0up4200/cloudagents/cloudagents"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// CompileFilter compiles an expression with the shared cached compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the objects matched by f, preserving order. A nil filter
// keeps everything.
func Apply(f Filter, objects []cloudagents.Object) []cloudagents.Object {
	if f == nil {
		return objects
	}

	matches := make([]cloudagents.Object, 0, len(objects))
	for _, obj := range objects {
		if f.Match(obj) {
			matches = append(matches, obj)
		}
	}
	return matches
}
