package cli

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/sciboot/validation"
)

type bagsOutput struct {
	N    int              `json:"n" yaml:"n"`
	Bags []validation.Bag `json:"bags" yaml:"bags"`
}

func addRoundsFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("rounds", "k", 100, "number of bootstrap replications")
}

func newSampleCommand(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw bootstrap replications of the indices 0..n-1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bags, err := validation.Bootstrap(n, a.cfg.Rounds, a.options()...)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.cfg.Format, bagsOutput{N: n, Bags: bags})
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "population size")
	addRoundsFlag(cmd)
	_ = cmd.MarkFlagRequired("n")
	return cmd
}

func newStratifiedCommand(a *app) *cobra.Command {
	var labels []int
	cmd := &cobra.Command{
		Use:   "stratified",
		Short: "Draw bootstrap replications preserving class proportions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bags, err := validation.StratifiedBootstrap(labels, a.cfg.Rounds, a.options()...)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.cfg.Format, bagsOutput{N: len(labels), Bags: bags})
		},
	}
	cmd.Flags().IntSliceVar(&labels, "labels", nil, "class label of every sample, e.g. 0,0,1,1,1")
	addRoundsFlag(cmd)
	return cmd
}

func newKFoldCommand(a *app) *cobra.Command {
	var (
		n      int
		folds  int
		labels []int
	)
	cmd := &cobra.Command{
		Use:   "kfold",
		Short: "Split the indices into shuffled k-fold partitions",
		Long: `Split 0..n-1 into k folds. With --labels the folds are stratified and n
is taken from the number of labels.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				bags []validation.Bag
				err  error
			)
			if len(labels) > 0 {
				n = len(labels)
				bags, err = validation.StratifiedKFold(labels, folds, a.options()...)
			} else {
				bags, err = validation.KFold(n, folds, a.options()...)
			}
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.cfg.Format, bagsOutput{N: n, Bags: bags})
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "population size")
	cmd.Flags().IntVar(&folds, "folds", 5, "number of folds")
	cmd.Flags().IntSliceVar(&labels, "labels", nil, "class labels for stratified folds")
	return cmd
}
