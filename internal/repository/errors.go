package repository

import "errors"

// Common repository errors
var (
	// ErrPedalboardNotFound is returned when a pedalboard is not found
	ErrPedalboardNotFound = errors.New("pedalboard not found")

	// ErrAssetNotFound is returned when a pedal or board template is not found
	ErrAssetNotFound = errors.New("asset not found")
)
