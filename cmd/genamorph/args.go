package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// parseSymbols parses a composition list like "Si:1,O:2" (comma or
// whitespace separated) into species specs, preserving order.
func parseSymbols(s string) ([]amorph.SpeciesSpec, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no species given")
	}

	specs := make([]amorph.SpeciesSpec, 0, len(fields))
	for _, f := range fields {
		symbol, weightStr, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("invalid species entry %q, expected Symbol:Weight (e.g. Si:1)", f)
		}
		weight, err := strconv.Atoi(weightStr)
		if err != nil {
			return nil, fmt.Errorf("invalid stoichiometry weight in %q: %w", f, err)
		}
		specs = append(specs, amorph.SpeciesSpec{Symbol: symbol, Weight: weight})
	}
	return specs, nil
}

// parseExtents parses cell extents like "10,10,12" or a single value for
// a cubic cell.
func parseExtents(s string) ([]float64, error) {
	fields := splitList(s)
	if len(fields) != 1 && len(fields) != 3 {
		return nil, fmt.Errorf("cell size needs 1 or 3 values, got %d", len(fields))
	}

	extents := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cell extent %q: %w", f, err)
		}
		extents = append(extents, v)
	}
	return extents, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// loadConfigFile reads a BuildConfig from a JSON or TOML file, chosen by
// file extension.
func loadConfigFile(path string) (amorph.BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return amorph.BuildConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg amorph.BuildConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return amorph.BuildConfig{}, fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return amorph.BuildConfig{}, fmt.Errorf("parsing JSON config: %w", err)
		}
	}
	return cfg, nil
}
