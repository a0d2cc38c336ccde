package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/driver"
	"github.com/born-ml/gradspeed/internal/tape"
)

var opCodes = []tape.OpCode{tape.OpInput, tape.OpConst, tape.OpAdd, tape.OpSub, tape.OpMul, tape.OpDiv}

func (a *app) tapeCmd() *cobra.Command {
	name := driver.DefaultAlgorithm
	size := driver.DefaultSize
	cmd := &cobra.Command{
		Use:   "tape",
		Short: "Show the recorded operation tape of an algorithm",
		Long: `Record an algorithm once and print instruction counts for the plain
recording, the pruned recording, the hash-consed recording and the
hash-consed pruned recording used by the graph backend.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tree, err := tapeTree(name, size)
			if err != nil {
				return err
			}
			a.out.Line(tree.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "algorithm", "a", name, "algorithm to record")
	cmd.Flags().IntVarP(&size, "size", "n", size, "problem size")
	return cmd
}

func tapeTree(name string, size int) (treeprint.Tree, error) {
	if !algo.Known(name) {
		return nil, fmt.Errorf("%w: %q", algo.ErrUnknownAlgorithm, name)
	}
	if err := algo.CheckSize(name, size); err != nil {
		return nil, &driver.ConfigError{Field: "size", Value: fmt.Sprint(size), Details: err.Error(), Err: err}
	}
	a, err := algo.New[tape.Var](name)
	if err != nil {
		return nil, err
	}
	if err := a.Setup(algo.Option{Size: size}); err != nil {
		return nil, err
	}

	plain := tape.New()
	dep := replay.Record(plain, a)
	pruned, _ := plain.Optimize(dep)

	cse := tape.New(tape.WithCSE())
	cdep := replay.Record(cse, a)
	graph, _ := cse.Optimize(cdep)

	tree := treeprint.NewWithRoot(fmt.Sprintf("%s size=%d", name, size))
	addStats(tree, "recorded", plain)
	addStats(tree, "pruned", pruned)
	addStats(tree, "recorded", cse)
	addStats(tree, "hash-consed and pruned", graph)
	return tree, nil
}

func addStats(tree treeprint.Tree, label string, t *tape.Tape) {
	if t.CSE() {
		label += " (hash-consed)"
	}
	branch := tree.AddMetaBranch(t.Len(), label)
	stats := t.Stats()
	for _, op := range opCodes {
		if n := stats[op]; n > 0 {
			branch.AddMetaNode(n, op.String())
		}
	}
}
