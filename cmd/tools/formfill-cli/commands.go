package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"canara-formfill/internal/common/config"
	"canara-formfill/internal/common/logger"
	extractplaceholders "canara-formfill/internal/workers/document/extract-placeholders"
	fillword "canara-formfill/internal/workers/form/fill-word"
)

type flags struct {
	configFile string
	template   string
	verbose    bool

	fieldsFile string
	outFile    string
}

func newRootCommand(out io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "formfill-cli",
		Short: "Inspect and fill the Word form template offline",
		Long: `formfill-cli runs the same pipeline as the fill function without the
Functions host.

Examples:
  formfill-cli placeholders
  formfill-cli fill --fields fields.json --out filled.docx
  echo '{"name":"ರವಿ"}' | formfill-cli fill --fields - --out filled.docx`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&f.configFile, "config", "", "config file (default is configs/config.yaml)")
	root.PersistentFlags().StringVar(&f.template, "template", "", "template path (overrides configuration)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline progress to stderr")

	root.AddCommand(newPlaceholdersCommand(f), newFillCommand(f))
	return root
}

func newPlaceholdersCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "placeholders",
		Short: "List the placeholders found in the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(f)
			if err != nil {
				return err
			}

			h := extractplaceholders.NewHandler(extractplaceholders.LoadConfig(&cfg.Template), log)
			result, err := h.Execute(cmd.Context(), &extractplaceholders.Input{})
			if err != nil {
				return err
			}

			for _, name := range result.Placeholders {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newFillCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the template with field values and write the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(f)
			if err != nil {
				return err
			}

			fields, err := readFields(f.fieldsFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			h := fillword.Build(cfg, log, nil)
			result, err := h.Execute(cmd.Context(), &fillword.Input{Fields: fields})
			if err != nil {
				return err
			}

			if err := os.WriteFile(f.outFile, result.Document, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %d placeholders)\n",
				f.outFile, len(result.Document), len(result.Placeholders))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.fieldsFile, "fields", "", "JSON object of field values, or - for stdin")
	cmd.Flags().StringVarP(&f.outFile, "out", "o", "", "output .docx path")
	_ = cmd.MarkFlagRequired("fields")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func setup(f *flags) (*config.Config, logger.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configFile != "" {
		cfg, err = config.LoadFromFile(f.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}
	if f.template != "" {
		cfg.Template.Path = f.template
	}

	level := "warn"
	if f.verbose {
		level = "debug"
	}
	return cfg, logger.NewStructured(level, "console"), nil
}

// readFields decodes the fields document the same way the HTTP handler does.
func readFields(path string, stdin io.Reader) (map[string]interface{}, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}

	body, err := json.Marshal(map[string]json.RawMessage{"fields": bytes.TrimSpace(raw)})
	if err != nil {
		return nil, fmt.Errorf("fields must be valid JSON: %w", err)
	}
	input, err := fillword.ParseRequest(body)
	if err != nil {
		return nil, errors.New("fields must be a JSON object of field values")
	}
	return input.Fields, nil
}
