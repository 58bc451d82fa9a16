package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndresSalinasB/expo-cli/internal/config"
	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/prebuild"
)

var prebuildPlatforms []string

func init() {
	prebuildCmd.Flags().StringSliceVar(&prebuildPlatforms, "platform", nil, "Platform to prebuild (repeatable; default: app platforms, then the platforms setting)")
	rootCmd.AddCommand(prebuildCmd)
}

var prebuildCmd = &cobra.Command{
	Use:   "prebuild",
	Short: "Apply config mods to the native project files",
	Long: `Load the app config from the project root, register the built-in mods, and
write android/gradle.properties and ios/Podfile.properties.json.

A failing file does not stop the others; every failure is listed and the
command exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		root, err := filepath.Abs(projectDir)
		if err != nil {
			return fmt.Errorf("resolving project root %s: %w", projectDir, err)
		}

		opts := prebuild.Options{
			Logger:           logger,
			DefaultPlatforms: toPlatforms(config.List(config.KeyPlatforms)),
		}

		ev, err := prebuild.Run(cmd.Context(), root, toPlatforms(prebuildPlatforms), opts)
		if ev == nil {
			return err
		}

		printEvaluation(cmd.OutOrStdout(), root, ev)
		if failures := ev.Failures(); len(failures) > 0 {
			return fmt.Errorf("%d of %d mod chains failed", len(failures), len(ev.Results))
		}
		return err
	},
}

func toPlatforms(names []string) []mods.Platform {
	if len(names) == 0 {
		return nil
	}
	out := make([]mods.Platform, 0, len(names))
	for _, name := range names {
		out = append(out, mods.Platform(name))
	}
	return out
}

// printEvaluation writes one line per chain, then warnings and failures.
func printEvaluation(w io.Writer, root string, ev *mods.Evaluation) {
	for _, res := range ev.Results {
		status := "in memory"
		switch {
		case res.Err != nil:
			status = "failed"
		case res.Changed():
			status = "updated"
		case res.Wrote:
			status = "unchanged"
		}

		target := res.Path
		if rel, err := filepath.Rel(root, res.Path); err == nil && res.Path != "" {
			target = rel
		}
		fmt.Fprintf(w, "  %-8s %-28s %-10s %s\n", res.Platform, res.FileKey, status, target)
	}

	for _, p := range ev.Skipped {
		fmt.Fprintf(w, "Skipped %s: no mods registered\n", p)
	}
	for _, warn := range ev.Warnings {
		fmt.Fprintf(w, "Warning: %v\n", warn)
	}

	failures := ev.Failures()
	if len(failures) == 0 {
		fmt.Fprintf(w, "\nPrebuild complete: %d file(s) processed.\n", len(ev.Results))
		return
	}
	fmt.Fprintf(w, "\nFailures:\n")
	for _, f := range failures {
		fmt.Fprintf(w, "  %v\n", f)
	}
}
