package model

// Classifier predicts the encoded class label for one scaled feature row.
type Classifier interface {
	Predict(row []float64) (int, error)
}

// Transformer rescales one raw feature row into the space the classifier was fit on.
type Transformer interface {
	Transform(row []float64) ([]float64, error)
}

// Decoder maps an encoded class label back to its original name.
type Decoder interface {
	InverseTransform(label int) (string, error)
}

// Artifacts holds the three pre-trained objects loaded at startup.
// A nil field means the artifact file was not found; the value is never
// mutated after LoadArtifacts returns.
type Artifacts struct {
	Classifier Classifier
	Scaler     Transformer
	Encoder    Decoder
}

// Status reports which artifacts are bound.
func (a *Artifacts) Status() map[string]bool {
	if a == nil {
		return map[string]bool{"classifier": false, "scaler": false, "label_encoder": false}
	}
	return map[string]bool{
		"classifier":    a.Classifier != nil,
		"scaler":        a.Scaler != nil,
		"label_encoder": a.Encoder != nil,
	}
}

// Ready reports whether all three artifacts are bound.
func (a *Artifacts) Ready() bool {
	return a != nil && a.Classifier != nil && a.Scaler != nil && a.Encoder != nil
}
