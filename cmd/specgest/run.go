package main

import (
	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/dgallion1/specgest/internal/record"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var flags engineFlags
	cmd := &cobra.Command{
		Use:   "run <input-document> [output-path]",
		Short: "Parse one document and write its records",
		Long: `Parse one document and write its records as JSON. The output path defaults
to ocp_llm_ready.json for nested records and ocp_flat_shalls.json for
flattened ones.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			out := opts.RecordShape.DefaultOutput()
			if len(args) == 2 {
				out = args[1]
			}

			engine := pipeline.NewEngine(opts, flags.logger(cmd.ErrOrStderr()))
			res, err := engine.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := record.WriteFile(out, res.Document); err != nil {
				return err
			}

			FormatSummary(cmd.OutOrStdout(), args[0], out, res)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
