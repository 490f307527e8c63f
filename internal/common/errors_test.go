package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{ErrorNotFound, ErrorDuplicateKey, ErrorStorageUnavailable, ErrorInvalidArgument}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("db error: %w", fmt.Errorf("%w: boom", ErrorDuplicateKey))
	if !errors.Is(err, ErrorDuplicateKey) {
		t.Fatalf("wrapped error lost its sentinel: %v", err)
	}
}
