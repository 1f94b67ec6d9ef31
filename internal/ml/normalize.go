package ml

import "fmt"

const numFeatures = 5

// Normalize applies the fixed affine transform (raw - min) * scale per
// feature. No clamping: out-of-calibration inputs produce values outside
// [0,1], which the model tolerates. Clamping here would distort exactly the
// users whose behavior drifted furthest from the training range.
func Normalize(raw []float64, cal Calibration) ([]float64, error) {
	if len(raw) != numFeatures {
		return nil, fmt.Errorf("expected %d features, got %d", numFeatures, len(raw))
	}
	out := make([]float64, numFeatures)
	for i := range raw {
		out[i] = (raw[i] - cal.Min[i]) * cal.Scale[i]
	}
	return out, nil
}
