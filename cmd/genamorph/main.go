// Command genamorph generates an amorphous atomic structure with a given
// mass density inside a periodic cell and writes it to a structure file.
//
// Example:
//
//	genamorph -s Si:1,O:2 -c 15,15,15 -density 2.2 -of silica.cfg
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stefanbringuier/genamorph/internal/amorph"
	"github.com/stefanbringuier/genamorph/internal/chemio"
	"github.com/stefanbringuier/genamorph/internal/logging"
)

func main() {
	var (
		symbols     = flag.String("s", "", "atomic symbols and stoichiometry, e.g. Si:1,O:2")
		cellSize    = flag.String("c", "", "cell extents in Angstrom along x,y,z (one value = cubic), e.g. 10,10,10")
		density     = flag.Float64("density", 1.0, "target density in g/cm^3")
		outfile     = flag.String("of", "amorphous.cfg", "output file name")
		format      = flag.String("format", "cfg", "output file format: cfg, xyz or lammps")
		minFactor   = flag.Float64("min-factor", amorph.DefaultMinFactor, "separation factor applied to combined covalent radii")
		maxAttempts = flag.Int("max-attempts", amorph.DefaultMaxAttempts, "candidate attempts per atom before unconstrained fallback")
		temperature = flag.Float64("temperature", amorph.DefaultTemperature, "selection temperature, lower spreads atoms more evenly")
		seed        = flag.Int64("seed", 0, "random seed (0 = seed from clock)")
		configFile  = flag.String("config", "", "optional JSON or TOML build config file, overridden by explicit flags")
		logLevel    = flag.String("log-level", "warn", "log level: debug, info, warn, error")
		stats       = flag.Bool("stats", false, "print structure diagnostics after the build")
	)
	flag.Parse()

	logger := logging.New(*logLevel)

	cfg := amorph.BuildConfig{}
	if *configFile != "" {
		loaded, err := loadConfigFile(*configFile)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "s":
			cfg.Species, flagErr = parseSymbols(*symbols)
		case "c":
			cfg.Box, flagErr = parseExtents(*cellSize)
		case "density":
			cfg.Density = *density
		case "min-factor":
			cfg.MinFactor = *minFactor
		case "max-attempts":
			cfg.MaxAttempts = *maxAttempts
		case "temperature":
			cfg.Temperature = *temperature
		case "seed":
			cfg.Seed = *seed
		}
	})
	if flagErr != nil {
		logger.Fatalf("%v", flagErr)
	}
	if *configFile == "" && cfg.Density == 0 {
		cfg.Density = *density
	}

	if len(cfg.Species) == 0 || len(cfg.Box) == 0 {
		fmt.Fprintln(os.Stderr, "error: both a composition (-s) and a cell size (-c) are required")
		flag.Usage()
		os.Exit(1)
	}
	if err := amorph.ValidateBuildConfig(cfg); err != nil {
		logger.Fatalf("invalid build parameters: %v", err)
	}

	table := amorph.NewPropertyTable()
	builder := amorph.NewBuilder(table, cfg.Options())
	builder.SetLogger(logger)

	progress := newProgressPrinter(os.Stderr)
	builder.SetProgress(progress.Observe)

	result, err := builder.Build(cfg.Stoichiometry(), cfg.BoxExtents(), cfg.Density)
	progress.Finish()
	if err != nil {
		logger.Fatalf("build failed: %v", err)
	}

	if result.Fallbacks > 0 {
		logger.Warnf("%d of %d atoms were placed without a separation guarantee; "+
			"the structure locally violates the minimum-distance rule", result.Fallbacks, len(result.Particles))
	}

	if err := writeStructure(*outfile, result, chemio.Format(*format)); err != nil {
		logger.Fatalf("writing %s: %v", *outfile, err)
	}

	fmt.Printf("Final density: %.6f amu/A^3 (%.4f g/cm^3)\n", result.Density, result.DensityGCm3)
	fmt.Printf("Wrote %d atoms to %s (%s)\n", len(result.Particles), *outfile, *format)

	if *stats {
		diag := amorph.Analyze(result, cfg.Options().MinFactor)
		printStats(diag)
	}
}

func writeStructure(path string, result *amorph.BuildResult, format chemio.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := chemio.Write(f, result, format); err != nil {
		return err
	}
	return f.Close()
}

func printStats(diag amorph.Diagnostics) {
	data, err := json.MarshalIndent(diag, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot encode diagnostics: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
