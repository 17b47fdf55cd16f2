package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"cool-checker/diag"
)

// FileName is the name of the project file looked up next to the sources.
const FileName = "coolc.toml"

// tomlProject is the [project] table as it is encoded in TOML
type tomlProject struct {
	Sources        []string `toml:"sources"`
	LogLevel       string   `toml:"log-level"`
	HaltAfterClass bool     `toml:"halt-after-class"`
	DumpTypes      bool     `toml:"dump-types"`
	LayoutOutput   string   `toml:"layout-output"`
}

type tomlConfig struct {
	Project tomlProject `toml:"project"`
}

// Config holds everything the check pipeline needs to know about a run.
type Config struct {
	// Sources are the root files to check. Imports are followed from each.
	Sources []string

	LogLevel int

	// HaltAfterClass stops type checking at the first class that reports
	// an error.
	HaltAfterClass bool

	// DumpTypes prints the decorated tree once checking succeeds.
	DumpTypes bool

	// LayoutOutput is the path of the .ll layout module. Empty disables it.
	LayoutOutput string
}

func Default() *Config {
	return &Config{
		LogLevel: diag.LogLevelVerbose,
	}
}

// Load reads a project file. Relative source and output paths are taken
// relative to the directory holding the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open config file at `%s`", path)
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file at `%s`", path)
	}

	tc := &tomlConfig{}
	if err := toml.Unmarshal(buff, tc); err != nil {
		return nil, errors.Wrapf(err, "error parsing config file at `%s`", path)
	}

	cfg := Default()
	dir := filepath.Dir(path)

	for _, src := range tc.Project.Sources {
		cfg.Sources = append(cfg.Sources, resolve(dir, src))
	}
	if tc.Project.LogLevel != "" {
		cfg.LogLevel = diag.ParseLogLevel(tc.Project.LogLevel)
	}
	cfg.HaltAfterClass = tc.Project.HaltAfterClass
	cfg.DumpTypes = tc.Project.DumpTypes
	if tc.Project.LayoutOutput != "" {
		cfg.LayoutOutput = resolve(dir, tc.Project.LayoutOutput)
	}

	return cfg, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
