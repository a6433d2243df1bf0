package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/core/model"
)

// Pipeline は StandardScaler と推定器を連結したモデル。
// Fit で渡された行からスケーラーを学習するため、バッグごとに Fit すれば
// テスト行の統計量が訓練に漏れない。
type Pipeline struct {
	Scaler    *StandardScaler
	Estimator model.Estimator
}

// NewPipeline は新しいPipelineを作成する
func NewPipeline(scaler *StandardScaler, estimator model.Estimator) *Pipeline {
	return &Pipeline{Scaler: scaler, Estimator: estimator}
}

// Fit はスケーラーを学習し、変換後のデータで推定器を学習させる
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	scaled, err := p.Scaler.FitTransform(X)
	if err != nil {
		return err
	}
	return p.Estimator.Fit(scaled, y)
}

// Predict は学習済みのスケーラーで変換してから予測する
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	scaled, err := p.Scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.Estimator.Predict(scaled)
}
