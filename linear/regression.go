// Package linear は線形モデルを提供します。
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/core/parallel"
	"github.com/YuminosukeSato/sciboot/metrics"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
)

// defaultParallelThreshold 以下の行数では逐次処理を使用する
const defaultParallelThreshold = 1000

// rankTolerance は R の対角成分の相対的な下限
const rankTolerance = 1e-10

// LinearRegression は最小二乗法による線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数

	fitIntercept      bool
	parallelThreshold int
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept:      true,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる。
// 正規方程式ではなく QR 分解で min ||Aw - y|| を解く（A = [1, X]）。
// ブートストラップ標本のように行が重複していても、列がフルランクであれば解ける。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	offset := 0
	if lr.fitIntercept {
		offset = 1
	}
	cols := c + offset
	if r < cols {
		return errors.NewModelError("LinearRegression.Fit", "underdetermined system", errors.ErrSingularMatrix)
	}

	// 切片項のために X の左に 1 の列を追加する
	A := mat.NewDense(r, cols, nil)
	parallel.ParallelizeWithThreshold(r, lr.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if offset == 1 {
				A.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				A.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var qr mat.QR
	qr.Factorize(A)

	if rankDeficient(&qr, cols) {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	var w mat.VecDense
	if err := qr.SolveVecTo(&w, false, yVec); err != nil {
		// mat.Condition はランク落ち（または悪条件）を意味する
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}
	if err := errors.CheckNumericalStability("LinearRegression.Fit", w.RawVector().Data, 0); err != nil {
		return err
	}

	lr.Intercept = 0
	if offset == 1 {
		lr.Intercept = w.AtVec(0)
	}
	lr.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.Weights.SetVec(j, w.AtVec(j+offset))
	}
	lr.NFeatures = c

	lr.SetFitted()
	return nil
}

// rankDeficient は R の対角成分が最大値に比べて無視できるほど小さいかを判定する
func rankDeficient(qr *mat.QR, cols int) bool {
	var R mat.Dense
	qr.RTo(&R)
	maxDiag := 0.0
	for j := 0; j < cols; j++ {
		maxDiag = math.Max(maxDiag, math.Abs(R.At(j, j)))
	}
	if maxDiag == 0 {
		return true
	}
	for j := 0; j < cols; j++ {
		if math.Abs(R.At(j, j)) <= rankTolerance*maxDiag {
			return true
		}
	}
	return false
}

// Predict は入力データに対する予測を行う（r×1 の列ベクトル）
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.CheckFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// y = X * weights + intercept
	var pred mat.VecDense
	pred.MulVec(X, lr.Weights)
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, pred.AtVec(i)+lr.Intercept)
	}
	return out, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	copy(weights, lr.Weights.RawVector().Data)
	return weights
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.CheckFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	pr, _ := yPred.Dims()
	if r != pr {
		return 0, errors.NewDimensionError("LinearRegression.Score", pr, r, 0)
	}
	yTrue := mat.NewVecDense(r, nil)
	yHat := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yHat.SetVec(i, yPred.At(i, 0))
	}
	return metrics.R2Score(yTrue, yHat)
}
