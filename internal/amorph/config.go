package amorph

// SpeciesSpec is one composition entry of a build configuration.
type SpeciesSpec struct {
	Symbol string `json:"symbol" toml:"symbol"`
	Weight int    `json:"weight" toml:"weight"`
}

// BuildConfig is the external description of one structure build, as
// parsed from a JSON or TOML file or an HTTP request body. Zero-valued
// tuning parameters mean "use the default".
type BuildConfig struct {
	Name        string        `json:"name,omitempty" toml:"name"`
	Species     []SpeciesSpec `json:"species" toml:"species"`
	Box         []float64     `json:"box" toml:"box"` // 1 value = cubic cell
	Density     float64       `json:"density" toml:"density"`
	MinFactor   float64       `json:"min_factor,omitempty" toml:"min_factor"`
	MaxAttempts int           `json:"max_attempts,omitempty" toml:"max_attempts"`
	Temperature float64       `json:"temperature,omitempty" toml:"temperature"`
	Seed        int64         `json:"seed,omitempty" toml:"seed"`
}

// Stoichiometry converts the configured composition into the ordered
// stoichiometry used by the builder.
func (cfg BuildConfig) Stoichiometry() Stoichiometry {
	stoich := make(Stoichiometry, 0, len(cfg.Species))
	for _, sc := range cfg.Species {
		stoich = append(stoich, Component{Symbol: sc.Symbol, Weight: sc.Weight})
	}
	return stoich
}

// BoxExtents expands the configured box to three extents. A single value
// describes a cubic cell. ValidateBuildConfig must have accepted the
// config first.
func (cfg BuildConfig) BoxExtents() Box {
	if len(cfg.Box) == 1 {
		return Box{cfg.Box[0], cfg.Box[0], cfg.Box[0]}
	}
	return Box{cfg.Box[0], cfg.Box[1], cfg.Box[2]}
}

// Options extracts the tuning parameters, leaving zero values for the
// builder to default.
func (cfg BuildConfig) Options() Options {
	return Options{
		MinFactor:   cfg.MinFactor,
		MaxAttempts: cfg.MaxAttempts,
		Temperature: cfg.Temperature,
		Seed:        cfg.Seed,
	}
}
