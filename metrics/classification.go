package metrics

import (
	"math"
	"slices"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PositiveClass は二値分類指標で陽性とみなすラベル
const PositiveClass = 1

func checkLabels(op string, yTrue, yPred []int) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred []int) (float64, error) {
	if err := checkLabels("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	errs, _ := ErrorCount(yTrue, yPred)
	return 1 - float64(errs)/float64(len(yTrue)), nil
}

// ErrorCount は誤分類の件数を返す
func ErrorCount(yTrue, yPred []int) (int, error) {
	if err := checkLabels("ErrorCount", yTrue, yPred); err != nil {
		return 0, err
	}
	count := 0
	for i := range yTrue {
		if yTrue[i] != yPred[i] {
			count++
		}
	}
	return count, nil
}

// ConfusionMatrix は混同行列。行が真のラベル、列が予測ラベル。
type ConfusionMatrix struct {
	Labels []int      // 昇順のラベル集合（yTrue と yPred の和集合）
	Counts *mat.Dense // Counts.At(i, j) = 真のラベル Labels[i] を Labels[j] と予測した件数
}

// NewConfusionMatrix は混同行列を作成する
func NewConfusionMatrix(yTrue, yPred []int) (*ConfusionMatrix, error) {
	if err := checkLabels("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}

	labels := make([]int, 0, len(yTrue)+len(yPred))
	labels = append(labels, yTrue...)
	labels = append(labels, yPred...)
	slices.Sort(labels)
	labels = slices.Compact(labels)

	m := len(labels)
	counts := mat.NewDense(m, m, nil)
	for i := range yTrue {
		r, _ := slices.BinarySearch(labels, yTrue[i])
		c, _ := slices.BinarySearch(labels, yPred[i])
		counts.Set(r, c, counts.At(r, c)+1)
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// BinaryStats は二値分類（陽性 = PositiveClass）の集計値
type BinaryStats struct {
	TP, FP, TN, FN int
}

// NewBinaryStats は陽性クラスに対する TP/FP/TN/FN を数える
func NewBinaryStats(yTrue, yPred []int) (BinaryStats, error) {
	var s BinaryStats
	if err := checkLabels("BinaryStats", yTrue, yPred); err != nil {
		return s, err
	}
	for i := range yTrue {
		truth := yTrue[i] == PositiveClass
		pred := yPred[i] == PositiveClass
		switch {
		case truth && pred:
			s.TP++
		case !truth && pred:
			s.FP++
		case truth && !pred:
			s.FN++
		default:
			s.TN++
		}
	}
	return s, nil
}

// ratio は分母が0の場合 NaN を返す
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Precision は適合率 TP / (TP + FP)
func (s BinaryStats) Precision() float64 {
	return ratio(float64(s.TP), float64(s.TP+s.FP))
}

// Recall は再現率（感度） TP / (TP + FN)
func (s BinaryStats) Recall() float64 {
	return ratio(float64(s.TP), float64(s.TP+s.FN))
}

// Specificity は特異度 TN / (TN + FP)
func (s BinaryStats) Specificity() float64 {
	return ratio(float64(s.TN), float64(s.TN+s.FP))
}

// F1 は適合率と再現率の調和平均
func (s BinaryStats) F1() float64 {
	return ratio(float64(2*s.TP), float64(2*s.TP+s.FP+s.FN))
}

// MCC はマシューズ相関係数
func (s BinaryStats) MCC() float64 {
	tp, fp, tn, fn := float64(s.TP), float64(s.FP), float64(s.TN), float64(s.FN)
	den := math.Sqrt((tp + fp) * (tp + fn) * (tn + fp) * (tn + fn))
	return ratio(tp*tn-fp*fn, den)
}
