// Package builder holds the run-time support shared by generated builders.
package builder

import (
	"errors"
	"fmt"
)

// ErrFieldNotSet is matched by every MissingFieldError.
var ErrFieldNotSet = errors.New("builder: required field is not set")

// MissingFieldError reports the first required field found empty while
// building a record.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is not set", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrFieldNotSet
}

// NotSet returns the error generated TryBuild methods report for an empty
// required slot.
func NotSet(record, field string) error {
	return &MissingFieldError{Record: record, Field: field}
}

// Must returns v or panics with err. Generated Build methods use it to turn
// the TryBuild result into the fail-fast variant.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
