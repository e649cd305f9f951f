// Command condlogic exercises the CNF engine end to end from a small
// textual clause notation, for manual exploration during development.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	condlogic "github.com/flowlint/condlogic"
	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/combine"
	"github.com/flowlint/condlogic/internal/dsl"
	"github.com/flowlint/condlogic/negate"
	"github.com/flowlint/condlogic/simplify"
)

var (
	debug      bool
	maxClauses int
	maxGroup   int
	maxCombine int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "condlogic",
		Short: "inspect the CNF engine by feeding it a textual formula",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level logging to stderr")
	root.PersistentFlags().IntVar(&maxClauses, "max-clauses", 0, "override the simplifier's hard clause ceiling (0 = default)")
	root.PersistentFlags().IntVar(&maxGroup, "max-group", 0, "override the negator's grouper growth ceiling (0 = default)")
	root.PersistentFlags().IntVar(&maxCombine, "max-combine", 0, "override the OR-combiner's per-side ceiling (0 = default)")

	root.AddCommand(newSimplifyCmd())
	root.AddCommand(newNegateCmd())
	root.AddCommand(newTruthsCmd())
	root.AddCommand(newCombineCmd())
	return root
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("cmd", "condlogic")
}

func simplifyOpts() []simplify.Option {
	opts := []simplify.Option{simplify.WithLogger(logger())}
	if maxClauses > 0 {
		opts = append(opts, simplify.WithMaxClauses(maxClauses))
	}
	return opts
}

func newSimplifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <formula>",
		Short: "simplify a CNF formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := dsl.Parse(args[0], 1, 1)
			if err != nil {
				return err
			}
			out := condlogic.Simplify(clauses, simplifyOpts()...)
			printClauses(cmd, out)
			return nil
		},
	}
}

func newNegateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "negate <formula>",
		Short: "negate a CNF formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := dsl.Parse(args[0], 1, 1)
			if err != nil {
				return err
			}
			opts := []negate.Option{negate.WithLogger(logger())}
			if maxGroup > 0 {
				opts = append(opts, negate.WithMaxGroupClauses(maxGroup))
			}
			out, err := condlogic.Negate(clauses, opts...)
			if err != nil {
				return err
			}
			printClauses(cmd, out)
			return nil
		},
	}
}

func newTruthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "truths <formula>",
		Short: "extract known per-variable facts from a CNF formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := dsl.Parse(args[0], 1, 1)
			if err != nil {
				return err
			}
			refs := map[assertion.VarKey]struct{}{}
			res := condlogic.Truths(clauses, 1, refs)
			for v, facts := range res.Truths {
				for _, f := range facts {
					cmd.Println(renderFact(v, f))
				}
			}
			return nil
		},
	}
}

func newCombineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combine <left-formula> <right-formula>",
		Short: "OR-combine two CNF formulae",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := dsl.Parse(args[0], 1, 1)
			if err != nil {
				return err
			}
			right, err := dsl.Parse(args[1], 2, 2)
			if err != nil {
				return err
			}
			opts := []combine.Option{combine.WithLogger(logger())}
			if maxCombine > 0 {
				opts = append(opts, combine.WithMaxPerSide(maxCombine))
			}
			out := condlogic.CombineOred(left, right, 3, opts...)
			printClauses(cmd, out)
			return nil
		},
	}
}

func printClauses(cmd *cobra.Command, clauses []condlogic.Clause) {
	for _, c := range clauses {
		cmd.Println(c.String())
	}
}

func renderFact(v assertion.VarKey, f condlogic.Disjunction) string {
	s := string(v) + ": "
	for i, a := range f {
		if i > 0 {
			s += " ∨ "
		}
		s += a.Render()
	}
	return s
}
