package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/dgallion1/specgest/internal/record"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var (
		flags  engineFlags
		outDir string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "batch <input-document>... --out-dir <dir>",
		Short: "Parse several documents in parallel",
		Long:  `Parse each input independently and write <basename>.json per input into the output directory.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkBatchNames(args); err != nil {
				return err
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			engine := pipeline.NewEngine(opts, flags.logger(cmd.ErrOrStderr()))
			results, err := engine.ProcessAll(cmd.Context(), args, jobs)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, br := range results {
				out := filepath.Join(outDir, outputName(br.Path))
				if err := record.WriteFile(out, br.Result.Document); err != nil {
					return err
				}
				FormatBatchLine(w, br.Path, out, br.Result)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for the JSON outputs")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Maximum documents processed at once (0 = unlimited)")
	return cmd
}

// outputName maps an input path to <basename>.json.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// checkBatchNames rejects inputs that would write the same output file.
func checkBatchNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := outputName(p)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("inputs %s and %s both write %s", prev, p, name)
		}
		seen[name] = p
	}
	return nil
}
