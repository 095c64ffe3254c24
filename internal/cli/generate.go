package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/svtypes/internal/docparser"
	"github.com/example/svtypes/internal/generator"
	"github.com/example/svtypes/internal/typemap"
)

// ErrNoClasses is returned when no page yielded a class with members.
var ErrNoClasses = errors.New("no classes found in documentation")

// NewGenerateCommand creates the command that renders the declaration file.
func NewGenerateCommand() *cobra.Command {
	var (
		common    commonFlags
		inputDir  string
		output    string
		overrides string
	)

	cmd := &cobra.Command{
		Use:          "svtypes-gen",
		Short:        "Generate TypeScript declarations from the saved API reference",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := common.load(cmd, func(cfg *Config, changed func(string) bool) {
				if changed("input") {
					cfg.Generate.InputDir = inputDir
				}
				if changed("output") {
					cfg.Generate.Output = output
				}
				if changed("overrides") {
					cfg.Generate.Overrides = overrides
				}
			})
			if err != nil {
				return err
			}

			tables := typemap.DefaultOverrides()
			if cfg.Generate.Overrides != "" {
				extra, err := typemap.LoadOverrides(cfg.Generate.Overrides)
				if err != nil {
					return err
				}
				tables.Merge(extra)
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Parsing documentation in %s", cfg.Generate.InputDir)

			classes, err := docparser.NewParser(log).ParseDirectory(cfg.Generate.InputDir)
			if err != nil {
				return err
			}
			if len(classes) == 0 {
				return fmt.Errorf("%w: %s", ErrNoClasses, cfg.Generate.InputDir)
			}

			renderer := generator.NewRenderer(typemap.New(tables))
			if err := renderer.WriteFile(cfg.Generate.Output, classes); err != nil {
				return err
			}

			members := 0
			for _, c := range classes {
				members += len(c.Members)
			}
			printRule(out)
			printSuccess(out, "Generated %s", cfg.Generate.Output)
			printLine(out, "  Classes: %d", len(classes))
			printLine(out, "  Total members: %d", members)
			return nil
		},
	}

	common.register(cmd)
	cmd.Flags().StringVar(&inputDir, "input", "dreamtonics-api", "Directory containing the saved pages")
	cmd.Flags().StringVar(&output, "output", "synthesizer-v-api.d.ts", "Declaration file to write")
	cmd.Flags().StringVar(&overrides, "overrides", "", "YAML file with extra type overrides")

	return cmd
}
