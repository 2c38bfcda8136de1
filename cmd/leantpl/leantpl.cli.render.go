package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leantpl/leantpl"
	"gopkg.in/yaml.v3"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	dataInline   string
	dataFilePath string
	outputPath   string
	rootDir      string
	noEscape     bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Parse context data
	data, err := loadData(cfg.dataInline, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
		return ExitCodeInputError
	}

	// Build the engine. A loader rooted at the template's directory
	// (or --root) makes include and extends directives resolve.
	opts := []leantpl.Option{
		leantpl.WithAutoescape(!cfg.noEscape),
	}
	root := cfg.rootDir
	if root == "" && cfg.templatePath != InputSourceStdin {
		root = filepath.Dir(cfg.templatePath)
	}
	if root != "" {
		loader, lerr := leantpl.NewFilesystemLoader(root)
		if lerr != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgBadRoot, lerr)
			return ExitCodeInputError
		}
		opts = append(opts, leantpl.WithLoader(loader))
	}

	engine := leantpl.MustNew(opts...)
	defer engine.Close()

	result, err := engine.RenderString(context.Background(), string(templateSource), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.dataInline, FlagData, "", "")
	fs.StringVar(&cfg.dataInline, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.rootDir, FlagRoot, "", "")
	fs.StringVar(&cfg.rootDir, FlagRootShort, "", "")
	fs.BoolVar(&cfg.noEscape, FlagNoEscape, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// loadData decodes context data from an inline string or a file.
// YAML decoding accepts JSON too, so both formats work either way.
func loadData(inline, filePath string) (map[string]any, error) {
	var raw []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	} else if inline != "" {
		raw = []byte(inline)
	} else {
		// No data provided, render against an empty context
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}
