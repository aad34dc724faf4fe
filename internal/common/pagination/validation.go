package pagination

import "fmt"

// Validate rejects parameters a list query cannot serve: a non-positive
// page in offset mode, or a limit outside [1, MaxLimit].
func (p Params) Validate(config Config) error {
	if p.Mode == ModeOffset && p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// WithDefaults fills unset parameters from the config. An empty mode
// becomes cursor mode (the first page of an infinite scroll), and an
// oversized limit is capped rather than rejected.
func (p Params) WithDefaults(config Config) Params {
	if p.Mode == "" {
		p.Mode = ModeCursor
	}
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
