package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/linear"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/preprocessing"
	"github.com/YuminosukeSato/sciboot/report"
	"github.com/YuminosukeSato/sciboot/validation"
)

type regressionScores struct {
	RSS  score `json:"rss" yaml:"rss"`
	MSE  score `json:"mse" yaml:"mse"`
	RMSE score `json:"rmse" yaml:"rmse"`
	MAE  score `json:"mae" yaml:"mae"`
	R2   score `json:"r2" yaml:"r2"`
}

func scoresOf(m validation.RegressionMetrics) regressionScores {
	return regressionScores{
		RSS:  score(m.RSS),
		MSE:  score(m.MSE),
		RMSE: score(m.RMSE),
		MAE:  score(m.MAE),
		R2:   score(m.R2),
	}
}

type validateOutput struct {
	Model    string           `json:"model" yaml:"model"`
	Target   string           `json:"target" yaml:"target"`
	Features []string         `json:"features" yaml:"features"`
	Samples  int              `json:"samples" yaml:"samples"`
	Rounds   int              `json:"rounds" yaml:"rounds"`
	Avg      regressionScores `json:"avg" yaml:"avg"`
	Std      regressionScores `json:"std" yaml:"std"`
	Plot     string           `json:"plot,omitempty" yaml:"plot,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	var (
		data        string
		target      string
		plot        string
		standardize bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Bootstrap-validate a least squares model on a CSV data set",
		Long: `Fit an ordinary least squares model on every bootstrap replication of a
headered numeric CSV file and score it on the out-of-bag rows. Prints the
mean and standard deviation of RSS, MSE, RMSE, MAE and R2 across rounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			ds, err := loadCSV(data, target)
			if err != nil {
				return err
			}

			trainer := func(X, y mat.Matrix) (model.Estimator, error) {
				var m model.Estimator = linear.NewLinearRegression()
				if standardize {
					m = preprocessing.NewPipeline(preprocessing.NewStandardScalerDefault(), m)
				}
				return m, m.Fit(X, y)
			}
			result, err := validation.BootstrapRegressionMatrix(a.cfg.Rounds, ds.X, ds.y, trainer, a.options()...)
			if err != nil {
				return err
			}

			if plot != "" {
				if err := report.Histogram(result.RMSEs(), "Bootstrap RMSE of "+target, "RMSE", a.cfg.Bins, plot); err != nil {
					return errors.Wrap(err, "plot")
				}
			}

			n, _ := ds.X.Dims()
			return write(cmd.OutOrStdout(), a.cfg.Format, validateOutput{
				Model:    modelName(standardize),
				Target:   target,
				Features: ds.features,
				Samples:  n,
				Rounds:   len(result.Rounds),
				Avg:      scoresOf(result.Avg),
				Std:      scoresOf(result.Std),
				Plot:     plot,
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "CSV file with a header row")
	cmd.Flags().StringVar(&target, "target", "", "name of the response column")
	cmd.Flags().StringVar(&plot, "plot", "", "write a histogram of per-round RMSE to this image file")
	cmd.Flags().BoolVar(&standardize, "standardize", false, "standardize features on each bag's train rows before fitting")
	cmd.Flags().Int("bins", 20, "histogram bins")
	addRoundsFlag(cmd)
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func modelName(standardize bool) string {
	if standardize {
		return "standard-scaler+ols"
	}
	return "ols"
}
