package main

import (
	"fmt"
	"os"

	"github.com/crillab/gophersmt/sat"
	"github.com/crillab/gophersmt/smt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "gophersmt [cnf-file]",
		Short:        "solve a DIMACS CNF problem",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			if o.debug {
				logger.SetLevel(logrus.DebugLevel)
			}
			return o.run(args[0], logger)
		},
	}

	cmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")
	return cmd
}

func (o *options) run(path string, logger *logrus.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open %q", path)
	}
	defer f.Close()

	p, err := loadDIMACS(f)
	if err != nil {
		return errors.Wrap(err, "cannot load problem")
	}

	s := smt.New(p.store, smt.WithLogger(logger))
	if err := s.Assert(p.clauses); err != nil {
		return errors.Wrap(err, "cannot assert problem")
	}

	logger.WithField("vars", len(p.vars)).Info("solving")
	switch s.Solve(nil) {
	case sat.Sat:
		fmt.Println("s SATISFIABLE")
		printModel(p, s)
	case sat.Unsat:
		fmt.Println("s UNSATISFIABLE")
	}
	return nil
}

func printModel(p *problem, s *smt.Solver) {
	fmt.Print("v")
	for i, t := range p.vars {
		val, _ := s.Value(t).BoolValue()
		lit := i + 1
		if !val {
			lit = -lit
		}
		fmt.Printf(" %d", lit)
	}
	fmt.Println(" 0")
}
