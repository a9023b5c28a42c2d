package amorph

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation issues
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid build config: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "build config validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// ValidateBuildConfig performs comprehensive validation of a BuildConfig.
// It checks composition, box extents and numeric parameters; it does NOT
// resolve species against a property table, that happens at build time.
func ValidateBuildConfig(cfg BuildConfig) error {
	err := &ValidationError{}

	if len(cfg.Species) == 0 {
		err.Add("at least one species is required")
	}

	seen := make(map[string]bool)
	for i, sc := range cfg.Species {
		if sc.Symbol == "" {
			err.Add(fmt.Sprintf("species at index %d: symbol is required", i))
			continue
		}
		if seen[sc.Symbol] {
			err.Add("duplicate species symbol: " + sc.Symbol)
		} else {
			seen[sc.Symbol] = true
		}
		if sc.Weight <= 0 {
			err.Add(fmt.Sprintf("species %s: stoichiometry weight must be positive, got %d", sc.Symbol, sc.Weight))
		}
	}

	switch len(cfg.Box) {
	case 1, 3:
		for i, ext := range cfg.Box {
			if ext <= 0 {
				err.Add(fmt.Sprintf("box extent at index %d must be positive, got %v", i, ext))
			}
		}
	default:
		err.Add(fmt.Sprintf("box must have 1 (cubic) or 3 extents, got %d", len(cfg.Box)))
	}

	if cfg.Density <= 0 {
		err.Add(fmt.Sprintf("density must be positive, got %v", cfg.Density))
	}
	if cfg.MinFactor < 0 {
		err.Add(fmt.Sprintf("min_factor must not be negative, got %v", cfg.MinFactor))
	}
	if cfg.MaxAttempts < 0 {
		err.Add(fmt.Sprintf("max_attempts must not be negative, got %d", cfg.MaxAttempts))
	}
	if cfg.Temperature < 0 {
		err.Add(fmt.Sprintf("temperature must not be negative, got %v", cfg.Temperature))
	}

	if err.HasIssues() {
		return err
	}
	return nil
}
