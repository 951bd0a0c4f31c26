// Package filter compiles boolean expressions over download tasks using
// the expr language, e.g. `Progress > 50 && State == "downloading"`.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/fournest/mpsub/moviepilot"
)

// Filter is a compiled task filter
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // task properties
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a download task. Evaluation errors
// count as a non-match.
func (f *Filter) Match(task moviepilot.DownloadTask) bool {
	result, err := expr.Run(f.program, environment(task))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Apply returns the tasks matching the filter
func (f *Filter) Apply(tasks []moviepilot.DownloadTask) []moviepilot.DownloadTask {
	matched := make([]moviepilot.DownloadTask, 0, len(tasks))
	for _, task := range tasks {
		if f.Match(task) {
			matched = append(matched, task)
		}
	}
	return matched
}

func helperFunctions() map[string]any {
	env := make(map[string]any, 8)
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	return env
}

func environment(task moviepilot.DownloadTask) map[string]any {
	env := helperFunctions()
	env["Task"] = task
	env["Title"] = task.Title
	env["Season"] = task.Season
	env["Episode"] = task.Episode
	env["Progress"] = task.Progress
	env["State"] = string(task.State)
	env["Speed"] = task.Speed
	return env
}
