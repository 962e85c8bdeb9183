// Package analyzers lists the custom analyzers run by mens-lint.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/mens/tools/mens-lint/analyzers/loopcall"
	"github.com/ersonp/mens/tools/mens-lint/analyzers/stringconcat"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		stringconcat.Analyzer,
	}
}
