package model

import (
	"errors"
	"fmt"
)

// LabelEncoder maps class indices to the crop names they were encoded from.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

func (e *LabelEncoder) validate() error {
	if len(e.Classes) == 0 {
		return errors.New("label encoder has no classes")
	}
	return nil
}

// InverseTransform implements Decoder.
func (e *LabelEncoder) InverseTransform(label int) (string, error) {
	if label < 0 || label >= len(e.Classes) {
		return "", fmt.Errorf("y contains previously unseen labels: [%d]", label)
	}
	return e.Classes[label], nil
}
