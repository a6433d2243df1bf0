package metrics

import (
	"math"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkPair は回帰指標の入力を検証する
func checkPair(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yTrue.IsEmpty() {
		return errors.NewValueError(op, "empty vector")
	}
	if yPred == nil || yPred.Len() != yTrue.Len() {
		got := 0
		if yPred != nil && !yPred.IsEmpty() {
			got = yPred.Len()
		}
		return errors.NewDimensionError(op, yTrue.Len(), got, 0)
	}
	return nil
}

// residuals は yTrue - yPred を返す
func residuals(yTrue, yPred *mat.VecDense) *mat.VecDense {
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return &diff
}

// RSS は残差平方和（Residual Sum of Squares）を計算する
func RSS(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("RSS", yTrue, yPred); err != nil {
		return 0, err
	}
	diff := residuals(yTrue, yPred)
	return mat.Dot(diff, diff), nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	diff := residuals(yTrue, yPred)
	return mat.Dot(diff, diff) / float64(yTrue.Len()), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|（L1ノルム）
	return mat.Norm(residuals(yTrue, yPred), 1) / float64(yTrue.Len()), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	yMean := mat.Sum(yTrue) / float64(n)

	// 全変動（TSS）と残差変動（RSS）を計算
	var tss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - yMean
		tss += d * d
	}
	diff := residuals(yTrue, yPred)
	rss := mat.Dot(diff, diff)

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}
