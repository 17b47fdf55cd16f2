package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/pkg/errors"

	"cool-checker/compiler"
	"cool-checker/config"
	"cool-checker/diag"
)

// Version is the coolc release.
const Version = "0.3.0"

func main() {
	cli := olive.NewCLI("coolc", "coolc checks the static semantics of COOL programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "type check a COOL program", true)
	checkCmd.AddPrimaryArg("file", "the root source file", false)
	checkCmd.AddStringArg("config", "c", "path to a coolc.toml project file", false)
	checkCmd.AddStringArg("layout", "lo", "write the object layout of a clean program to this .ll file", false)
	checkCmd.AddFlag("dump-types", "dt", "print the decorated tree once checking succeeds")
	checkCmd.AddFlag("halt-early", "he", "stop at the first class that reports an error")

	cli.AddSubcommand("version", "print the coolc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		diag.PrintErrorMessage("Usage Error", err)
		os.Exit(1)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		loglevel, _ := result.Arguments["loglevel"].(string)
		if !execCheckCommand(subResult, loglevel) {
			os.Exit(1)
		}
	case "version":
		diag.PrintInfoMessage("coolc Version", Version)
	}
}

// execCheckCommand runs the check pipeline and reports whether the program
// checked clean.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) bool {
	cfg, err := buildConfig(result, loglevel)
	if err != nil {
		diag.PrintErrorMessage("Config Error", err)
		return false
	}

	sink := diag.NewSink(cfg.LogLevel)
	if _, err := compiler.New(cfg, sink, os.Stdout).Check(context.Background()); err != nil {
		diag.PrintErrorMessage("Error", err)
		return false
	}

	sink.Finish()
	return sink.ShouldProceed()
}

// buildConfig starts from the project file, when one is given or found next
// to the root source, and lets command line arguments override it.
func buildConfig(result *olive.ArgParseResult, loglevel string) (*config.Config, error) {
	file, hasFile := result.PrimaryArg()
	configPath, _ := result.Arguments["config"].(string)

	if configPath == "" && hasFile {
		candidate := filepath.Join(filepath.Dir(file), config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if hasFile {
		cfg.Sources = []string{file}
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New("no source file given: pass a file or a project with `sources`")
	}

	if loglevel != "" {
		cfg.LogLevel = diag.ParseLogLevel(loglevel)
	}
	if layout, ok := result.Arguments["layout"].(string); ok && layout != "" {
		cfg.LayoutOutput = layout
	}
	if result.HasFlag("dump-types") {
		cfg.DumpTypes = true
	}
	if result.HasFlag("halt-early") {
		cfg.HaltAfterClass = true
	}

	return cfg, nil
}
