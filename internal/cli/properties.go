package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/prebuild"
	"github.com/AndresSalinasB/expo-cli/internal/properties"
)

var propertiesListAll bool

func init() {
	propertiesListCmd.Flags().BoolVar(&propertiesListAll, "all", false, "Show comments, blank lines, and passthrough lines too")
	propertiesCmd.AddCommand(propertiesListCmd)
	propertiesCmd.AddCommand(propertiesGetCmd)
	propertiesCmd.AddCommand(propertiesSetCmd)
	propertiesCmd.AddCommand(propertiesUnsetCmd)
	rootCmd.AddCommand(propertiesCmd)
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Read and edit key=value property files",
	Long: `Read and edit property files such as android/gradle.properties.

Edits keep comments, blank lines, and ordering intact. Lines the parser does
not understand are written back unchanged.`,
}

var propertiesListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the properties in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := readProperties(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, e := range entries {
			switch {
			case propertiesListAll:
				fmt.Fprintf(out, "%4d  %-11s %s\n", i+1, e.Kind, e)
			case e.Kind == properties.KindProperty:
				fmt.Fprintf(out, "%s=%s\n", strings.TrimSpace(e.Key), strings.TrimSpace(e.Value))
			}
		}
		return nil
	},
}

var propertiesGetCmd = &cobra.Command{
	Use:   "get <file> <key>",
	Short: "Print the value of a property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := readProperties(args[0])
		if err != nil {
			return err
		}
		value, ok := entries.Get(args[1])
		if !ok {
			return fmt.Errorf("property %q not found in %s", args[1], args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var propertiesSetCmd = &cobra.Command{
	Use:   "set <file> <key> <value>",
	Short: "Set a property, adding it if absent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, key, value := args[0], args[1], args[2]
		res, err := editProperties(cmd.Context(), path, func(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
			req.Results.Upsert(key, value)
			return req, nil
		})
		if err != nil {
			return err
		}
		if res.Changed() {
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already %s = %s\n", path, key, value)
		}
		return nil
	},
}

var propertiesUnsetCmd = &cobra.Command{
	Use:   "unset <file> <key>",
	Short: "Remove a property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, key := args[0], args[1]
		removed := false
		_, err := editProperties(cmd.Context(), path, func(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
			removed = req.Results.Remove(key)
			return req, nil
		})
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("property %q not found in %s", key, path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", key, path)
		return nil
	},
}

func readProperties(path string) (properties.Entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return properties.Parse(data), nil
}

// propertiesFile is the key single-file edits run under.
var propertiesFile = mods.Key[properties.Entries]{Platform: mods.Android, Name: "properties-file"}

// editProperties runs edit as a one-layer chain over path, so the file goes
// through the same read, validate, and write path prebuild uses.
func editProperties(ctx context.Context, path string, edit mods.Transform[properties.Entries]) (*mods.ChainResult, error) {
	cfg := mods.NewConfig(".", nil)
	mods.Apply(cfg, propertiesFile, "edit", edit)

	p := prebuild.GradlePropertiesProvider()
	p.Path = func(string) string { return path }
	mods.WithBaseMod(cfg, propertiesFile, p)

	ev, err := mods.Evaluate(ctx, cfg, []mods.Platform{propertiesFile.Platform})
	if err != nil {
		return nil, err
	}
	return ev.Result(propertiesFile.Platform, propertiesFile.Name), nil
}
