package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
)

// Paths locates the three artifact files on disk.
type Paths struct {
	Classifier   string
	Scaler       string
	LabelEncoder string
}

// LoadArtifacts reads the classifier, scaler and label encoder.
// A missing file is logged and leaves that artifact unbound so the process can
// still start; any other read or decode failure is returned.
func LoadArtifacts(paths Paths) (*Artifacts, error) {
	a := &Artifacts{}
	missing := false

	clf, err := LoadClassifier(paths.Classifier)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		missing = true
	case err != nil:
		return nil, err
	default:
		a.Classifier = clf
	}

	scaler, err := LoadScaler(paths.Scaler)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		missing = true
	case err != nil:
		return nil, err
	default:
		a.Scaler = scaler
	}

	enc, err := LoadLabelEncoder(paths.LabelEncoder)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		missing = true
	case err != nil:
		return nil, err
	default:
		a.Encoder = enc
	}

	if missing {
		log.Printf("WARNING: Model or preprocessor files not found. Ensure all artifact files exist (%s, %s, %s).",
			paths.Classifier, paths.Scaler, paths.LabelEncoder)
	}

	return a, nil
}

// artifactHeader is decoded first to pick the concrete artifact type.
type artifactHeader struct {
	Type string `json:"type"`
}

// LoadClassifier reads a random_forest or decision_tree export.
func LoadClassifier(path string) (*RandomForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier %s: %w", path, err)
	}

	var hdr artifactHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, fmt.Errorf("decode classifier %s: %w", path, err)
	}

	forest := &RandomForest{}
	switch hdr.Type {
	case "random_forest":
		if err := json.Unmarshal(data, forest); err != nil {
			return nil, fmt.Errorf("decode classifier %s: %w", path, err)
		}
	case "decision_tree":
		var single struct {
			NFeatures int   `json:"n_features"`
			Classes   []int `json:"classes"`
			Tree      Tree  `json:"tree"`
		}
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decode classifier %s: %w", path, err)
		}
		forest.NFeatures = single.NFeatures
		forest.Classes = single.Classes
		forest.Trees = []Tree{single.Tree}
	default:
		return nil, fmt.Errorf("classifier %s: unsupported type %q", path, hdr.Type)
	}

	if err := forest.validate(); err != nil {
		return nil, fmt.Errorf("classifier %s: %w", path, err)
	}
	return forest, nil
}

// LoadScaler reads a standard_scaler or min_max_scaler export.
func LoadScaler(path string) (Transformer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler %s: %w", path, err)
	}

	var hdr artifactHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, fmt.Errorf("decode scaler %s: %w", path, err)
	}

	switch hdr.Type {
	case "standard_scaler":
		s := &StandardScaler{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode scaler %s: %w", path, err)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("scaler %s: %w", path, err)
		}
		return s, nil
	case "min_max_scaler":
		s := &MinMaxScaler{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode scaler %s: %w", path, err)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("scaler %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("scaler %s: unsupported type %q", path, hdr.Type)
	}
}

// LoadLabelEncoder reads a label encoder export.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label encoder %s: %w", path, err)
	}

	enc := &LabelEncoder{}
	if err := json.Unmarshal(data, enc); err != nil {
		return nil, fmt.Errorf("decode label encoder %s: %w", path, err)
	}
	if err := enc.validate(); err != nil {
		return nil, fmt.Errorf("label encoder %s: %w", path, err)
	}
	return enc, nil
}
