package crop

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/i474232898/crop-recommendation/internal/model"
)

// recordingScaler captures the row it is asked to transform.
type recordingScaler struct {
	got []float64
}

func (s *recordingScaler) Transform(row []float64) ([]float64, error) {
	s.got = append([]float64(nil), row...)
	return row, nil
}

type fixedClassifier struct {
	label int
	err   error
}

func (c fixedClassifier) Predict([]float64) (int, error) { return c.label, c.err }

func loadTestArtifacts(t *testing.T) *model.Artifacts {
	t.Helper()
	dir := filepath.Join("..", "model", "testdata")
	a, err := model.LoadArtifacts(model.Paths{
		Classifier:   filepath.Join(dir, "classifier.json"),
		Scaler:       filepath.Join(dir, "scaler.json"),
		LabelEncoder: filepath.Join(dir, "label_encoder.json"),
	})
	if err != nil {
		t.Fatalf("LoadArtifacts() error = %v", err)
	}
	return a
}

func TestParseInput_NoData(t *testing.T) {
	for _, body := range []string{"", "   ", "\n", "null", "false", "0", "0.0", `""`, "[]", " [ ] "} {
		if _, err := ParseInput([]byte(body)); !errors.Is(err, ErrNoData) {
			t.Errorf("ParseInput(%q) error = %v, want ErrNoData", body, err)
		}
	}
}

func TestParseInput_Defaults(t *testing.T) {
	in, err := ParseInput([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}

	want := DefaultInput()
	if in != want {
		t.Errorf("ParseInput({}) = %+v, want %+v", in, want)
	}
	if in.City != "Unknown" {
		t.Errorf("City = %v, want Unknown", in.City)
	}
}

func TestParseInput_Coercion(t *testing.T) {
	body := `{"N": 90, "P": "42", "K": " 43.5 ", "ph": 6.5, "temperature": true,
		"humidity": 82.1, "rainfall": "2e2", "city_name": "Pune"}`

	in, err := ParseInput([]byte(body))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}

	want := Input{N: 90, P: 42, K: 43.5, PH: 6.5, Temperature: 1, Humidity: 82.1, Rainfall: 200, City: "Pune"}
	if in != want {
		t.Errorf("ParseInput() = %+v, want %+v", in, want)
	}
}

func TestParseInput_CityIsEchoedUnvalidated(t *testing.T) {
	in, err := ParseInput([]byte(`{"city_name": 42}`))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}
	out, _ := json.Marshal(in.City)
	if string(out) != "42" {
		t.Errorf("City = %s, want 42", out)
	}
}

func TestParseInput_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantText  string
	}{
		{"non numeric string", `{"N": "abc"}`, "N", "could not convert string to float"},
		{"null value", `{"ph": null}`, "ph", "not null"},
		{"object value", `{"humidity": {"v": 1}}`, "humidity", "not object"},
		{"array value", `{"rainfall": [1]}`, "rainfall", "not array"},
		{"overflow", `{"K": "1e999"}`, "K", "could not convert string to float"},
		{"nan string", `{"temperature": "NaN"}`, "temperature", "finite"},
		{"malformed json", `{"N": `, "", "invalid JSON body"},
		{"trailing data", `{} {}`, "", "unexpected data"},
		{"array body", `[1, 2]`, "", "must be a JSON object"},
		{"number body", `7`, "", "must be a JSON object"},
		{"true body", `true`, "", "must be a JSON object"},
		{"string body", `"rice"`, "", "must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.body))
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("ParseInput() error = %v, want *InputError", err)
			}
			if inputErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", inputErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestFeaturesOrder(t *testing.T) {
	in := Input{N: 1, P: 2, K: 3, PH: 6, Temperature: 4, Humidity: 5, Rainfall: 7}

	scaler := &recordingScaler{}
	rec := NewRecommender(&model.Artifacts{
		Classifier: fixedClassifier{label: 0},
		Scaler:     scaler,
		Encoder:    &model.LabelEncoder{Classes: []string{"rice"}},
	})

	if _, err := rec.Recommend(in); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := []float64{1, 2, 3, 4, 5, 6, 7}
	if len(scaler.got) != len(want) {
		t.Fatalf("scaler received %d features, want %d", len(scaler.got), len(want))
	}
	for i := range want {
		if scaler.got[i] != want[i] {
			t.Errorf("feature %s = %v, want %v", FeatureColumns[i], scaler.got[i], want[i])
		}
	}
}

func TestRecommend(t *testing.T) {
	rec := NewRecommender(loadTestArtifacts(t))

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"defaults", DefaultInput(), "chickpea"},
		{"nitrogen rich humid", Input{N: 120, P: 50, K: 50, PH: 6.5, Temperature: 25, Humidity: 80, Rainfall: 100, City: "Cuttack"}, "rice"},
		{"wet and humid", Input{N: 40, P: 50, K: 50, PH: 6.5, Temperature: 25, Humidity: 90, Rainfall: 200, City: "Indore"}, "maize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rec.Recommend(tt.in)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got.RecommendedCrop != tt.want {
				t.Errorf("RecommendedCrop = %q, want %q", got.RecommendedCrop, tt.want)
			}
			if got.City != tt.in.City || got.Temperature != tt.in.Temperature ||
				got.Humidity != tt.in.Humidity || got.Rainfall != tt.in.Rainfall {
				t.Errorf("echoed context %+v does not match input %+v", got, tt.in)
			}
		})
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	rec := NewRecommender(loadTestArtifacts(t))
	in := Input{N: 40, P: 50, K: 50, PH: 6.5, Temperature: 25, Humidity: 90, Rainfall: 200}

	first, err := rec.Recommend(in)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := rec.Recommend(in)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, got, first)
		}
	}
}

func TestRecommend_Errors(t *testing.T) {
	full := loadTestArtifacts(t)

	tests := []struct {
		name      string
		artifacts *model.Artifacts
		wantKind  string
	}{
		{"nothing loaded", nil, "model_unavailable"},
		{"missing scaler", &model.Artifacts{Classifier: full.Classifier, Encoder: full.Encoder}, "model_unavailable"},
		{"missing encoder", &model.Artifacts{Classifier: full.Classifier, Scaler: full.Scaler}, "model_unavailable"},
		{
			name: "scaler shape mismatch",
			artifacts: &model.Artifacts{
				Classifier: full.Classifier,
				Scaler:     &model.StandardScaler{Mean: []float64{0}, Scale: []float64{1}},
				Encoder:    full.Encoder,
			},
			wantKind: "computation_error",
		},
		{
			name: "classifier failure",
			artifacts: &model.Artifacts{
				Classifier: fixedClassifier{err: errors.New("boom")},
				Scaler:     full.Scaler,
				Encoder:    full.Encoder,
			},
			wantKind: "computation_error",
		},
		{
			name: "unseen label",
			artifacts: &model.Artifacts{
				Classifier: fixedClassifier{label: 9},
				Scaler:     full.Scaler,
				Encoder:    full.Encoder,
			},
			wantKind: "computation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecommender(tt.artifacts).Recommend(DefaultInput())
			if err == nil {
				t.Fatal("Recommend() expected error, got nil")
			}
			if got := Kind(err); got != tt.wantKind {
				t.Errorf("Kind() = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{ErrNoData, "no_data"},
		{&InputError{Field: "N", Err: errors.New("bad")}, "input_error"},
		{&ModelUnavailableError{Artifact: "scaler"}, "model_unavailable"},
		{&ComputationError{Stage: "predict", Err: errors.New("bad")}, "computation_error"},
		{errors.New("other"), "internal_error"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
