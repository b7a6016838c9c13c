package app

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/eqgen/internal/varid"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath    string   // hcl files
	ProfilePaths []string // hcl files with extra profiles
	Profile      string
	Externals    []string // component.variable

	OutputDir  string
	FileName   string // base name of the generated files, model name if empty
	ReportFile string // name of the JSON analysis report, none if empty
	Compress   bool

	NoColor   bool
	LogFormat string
	LogLevel  string
}

// NewConfig checks cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []string
	if cfg.ModelPath == "" {
		errs = append(errs, "ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.Profile == "" {
		errs = append(errs, "Profile is a required configuration field and cannot be empty")
	}
	for _, ext := range cfg.Externals {
		if _, err := varid.Parse(ext); err != nil {
			errs = append(errs, fmt.Sprintf("external '%s': %v", ext, err))
		}
	}
	for _, name := range []string{cfg.FileName, cfg.ReportFile} {
		if strings.ContainsAny(name, `/\`) {
			errs = append(errs, fmt.Sprintf("'%s' must be a file name, not a path", name))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &cfg, nil
}
