package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndresSalinasB/expo-cli/internal/manifest"
	"github.com/AndresSalinasB/expo-cli/internal/prebuild"
)

var manifestPretty bool

func init() {
	manifestCmd.Flags().BoolVar(&manifestPretty, "pretty", false, "Indent the JSON output")
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the public manifest for the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(projectDir)
		if err != nil {
			return fmt.Errorf("resolving project root %s: %w", projectDir, err)
		}

		cfg, err := prebuild.Load(root)
		if err != nil {
			return err
		}

		m, err := manifest.FromConfig(cfg)
		if err != nil {
			return err
		}
		data, err := manifest.Marshal(m)
		if err != nil {
			return err
		}

		if manifestPretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, data, "", "  "); err != nil {
				return fmt.Errorf("indenting manifest: %w", err)
			}
			data = buf.Bytes()
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
