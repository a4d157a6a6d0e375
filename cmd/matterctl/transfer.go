package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// toYAML re-encodes the stored JSON document so the field names match it.
func toYAML(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func fromYAML(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func detectFormat(path, flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal document as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.svc.Export(cmd.Context(), a.user(), a.loc)
			if err != nil {
				return err
			}

			switch detectFormat(output, format) {
			case formatJSON:
			case formatYAML:
				if raw, err = toYAML(raw); err != nil {
					return fmt.Errorf("convert to yaml: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
				return err
			}
			return os.WriteFile(output, raw, 0o600)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (defaults to json, or the output extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (defaults to stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the journal with an exported document",
		Long: `Replaces the journal with a JSON or YAML document. Documents exported by
older versions of the app are migrated on the way in. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			if detectFormat(args[0], format) == formatYAML {
				if raw, err = fromYAML(raw); err != nil {
					return fmt.Errorf("parse yaml: %w", err)
				}
			}

			snap, err := a.svc.Import(cmd.Context(), a.user(), raw, a.loc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d intentions, %d gifts\n",
				green("✓"), len(snap.State.Goals), len(snap.State.Inventory))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (defaults to the file extension)")
	return cmd
}
