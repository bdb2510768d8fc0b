package crop

import (
	"github.com/i474232898/crop-recommendation/internal/model"
)

// Recommendation is the prediction response. Temperature, humidity and rainfall
// echo the request input, not a weather lookup.
type Recommendation struct {
	RecommendedCrop string  `json:"recommended_crop"`
	City            any     `json:"city"`
	Temperature     float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	Rainfall        float64 `json:"rainfall"`
}

// Recommender runs the scale, classify and decode pipeline over shared,
// read-only artifacts. It is safe for concurrent use.
type Recommender struct {
	artifacts *model.Artifacts
}

// NewRecommender creates a Recommender. Unbound artifacts are reported per call.
func NewRecommender(artifacts *model.Artifacts) *Recommender {
	if artifacts == nil {
		artifacts = &model.Artifacts{}
	}
	return &Recommender{artifacts: artifacts}
}

// Artifacts returns the artifacts the recommender was built with.
func (r *Recommender) Artifacts() *model.Artifacts {
	return r.artifacts
}

// Classify returns the crop name predicted for a raw feature vector.
func (r *Recommender) Classify(features FeatureVector) (string, error) {
	a := r.artifacts
	if a.Scaler == nil {
		return "", &ModelUnavailableError{Artifact: "scaler"}
	}
	if a.Classifier == nil {
		return "", &ModelUnavailableError{Artifact: "classifier"}
	}
	if a.Encoder == nil {
		return "", &ModelUnavailableError{Artifact: "label_encoder"}
	}

	scaled, err := a.Scaler.Transform(features[:])
	if err != nil {
		return "", &ComputationError{Stage: "scale", Err: err}
	}

	label, err := a.Classifier.Predict(scaled)
	if err != nil {
		return "", &ComputationError{Stage: "predict", Err: err}
	}

	name, err := a.Encoder.InverseTransform(label)
	if err != nil {
		return "", &ComputationError{Stage: "decode", Err: err}
	}
	return name, nil
}

// Recommend classifies in and echoes its context fields.
func (r *Recommender) Recommend(in Input) (Recommendation, error) {
	crop, err := r.Classify(in.Features())
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{
		RecommendedCrop: crop,
		City:            in.City,
		Temperature:     in.Temperature,
		Humidity:        in.Humidity,
		Rainfall:        in.Rainfall,
	}, nil
}
