package prompt

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoTypes is returned when the document declares no selectable records.
var ErrNoTypes = errors.New("prompt: no record types to choose from")

// SelectTypes asks the user which of names to generate builders for.
// preselected names are ticked initially. The result keeps the order of names.
func SelectTypes(ctx context.Context, driver Driver, names, preselected []string) ([]string, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	if len(names) == 0 {
		return nil, ErrNoTypes
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	var defaults []int
	for _, name := range preselected {
		if i, ok := index[name]; ok {
			defaults = append(defaults, i)
		}
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Generate builders for",
		Options:  names,
		Defaults: defaults,
		Help:     "space toggles, enter confirms",
		PageSize: 15,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: select types: %w", err)
	}
	out := make([]string, 0, len(picked))
	for _, i := range picked {
		if i < 0 || i >= len(names) {
			return nil, fmt.Errorf("prompt: selection index %d out of range", i)
		}
		out = append(out, names[i])
	}
	if len(out) == 0 {
		return nil, ErrNoTypes
	}
	return out, nil
}

// ConfirmOverwrite asks before replacing a file that was not generated.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) (bool, error) {
	if driver == nil {
		return false, errors.New("prompt: driver is required")
	}
	ok, err := driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s was not written by buildergen. Overwrite it?", path),
		Default: false,
	})
	if err != nil {
		return false, fmt.Errorf("prompt: confirm overwrite: %w", err)
	}
	return ok, nil
}
