package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う（n×1 の列ベクトルを返す）
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は学習と予測の両方を行えるモデル
type Estimator interface {
	Fitter
	Predictor
}

// Scorer はスコアを計算できるモデル
type Scorer interface {
	// Score はモデルの決定係数（R²）などを計算する
	Score(X, y mat.Matrix) (float64, error)
}
