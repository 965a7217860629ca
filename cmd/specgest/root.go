package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/dgallion1/specgest/internal/version"
	"github.com/spf13/cobra"
)

// engineFlags are the option flags shared by run and batch.
type engineFlags struct {
	anchors       string
	naming        string
	shape         string
	keyPhrases    bool
	strictHeaders bool
	configPath    string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "specgest",
		Short: "Turn hardware specifications into section and requirement records",
		Long: `specgest reads a specification document (PDF, DOCX, Markdown, HTML or text),
splits it into numbered sections, and extracts every "shall" requirement with
its hierarchy, context and cross-references as JSON records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = version.Version
	root.SetVersionTemplate(fmt.Sprintf("specgest %s\n", version.String()))

	root.AddCommand(newRunCmd(), newBatchCmd(), newServeCmd())
	return root
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.anchors, "anchors", "", "Cross-reference matching (loose, strict)")
	fl.StringVar(&f.naming, "naming", "", "Hierarchy naming (named, numeric)")
	fl.StringVar(&f.shape, "shape", "", "Record shape (nested, flattened)")
	fl.BoolVar(&f.keyPhrases, "key-phrases", false, "Attach extracted key phrases to each section")
	fl.BoolVar(&f.strictHeaders, "strict-headers", false, "Require a title after every section number")
	fl.StringVar(&f.configPath, "config", "", "YAML options file")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Log each finalized section")
}

// options resolves engine options from env, then the YAML file, then any
// flags set on cmd.
func (f *engineFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	cfg := config.Load()
	if f.configPath != "" {
		var err error
		if cfg, err = cfg.LoadFile(f.configPath); err != nil {
			return pipeline.Options{}, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("anchors") {
		cfg.AnchorStrictness = f.anchors
	}
	if fl.Changed("naming") {
		cfg.HierarchyNaming = f.naming
	}
	if fl.Changed("shape") {
		cfg.RecordShape = f.shape
	}
	if fl.Changed("key-phrases") {
		cfg.KeyPhrases = f.keyPhrases
	}
	if fl.Changed("strict-headers") {
		cfg.HeaderStrictness = "lenient"
		if f.strictHeaders {
			cfg.HeaderStrictness = "strict"
		}
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return pipeline.OptionsFromConfig(cfg)
}

func (f *engineFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
