// Command gophersmt is a thin DIMACS-driven demonstration front end over
// smt.Solver with no theories attached, the uninterpreted-boolean case:
// it takes the role gophersat's own cmd plays for its CDCL engine, since
// parsing richer SMT-LIB input and wiring in theory plugins is a concern
// for an embedding application, not this binary.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("gophersmt failed")
		os.Exit(1)
	}
}
