// mens-lint checks mens for store and remote round trips inside loops.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/mens/tools/mens-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
