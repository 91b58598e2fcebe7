package base

import "errors"

var (
	// ErrCustomSettingsUnsupported used when custom settings are found in the config when they shouldn't be
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrStrategyNotFound used when the strategy specified in the config does not exist
	ErrStrategyNotFound = errors.New("not found. Please ensure the strategy-settings field 'name' is spelled properly in your config")
	// ErrInvalidCustomSettings used when bad custom settings are found in the config
	ErrInvalidCustomSettings = errors.New("invalid custom settings in config")
	// ErrTooMuchBadData used when there is too much missing data to continue
	ErrTooMuchBadData = errors.New("backtesting cannot continue as there is too much invalid data. Please review your dataset")
)

// Strategy is the base implementation of the strategy Handler interface
type Strategy struct{}
