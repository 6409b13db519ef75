package cli

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/git-pkgs/pkginfo/internal/core"
	"github.com/git-pkgs/pkginfo/internal/dist"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type showFlags struct {
	format  string
	fields  []string
	maxSize int64
}

// report is the per-file output record.
type report struct {
	File          string         `json:"file" yaml:"file"`
	Kind          string         `json:"kind" yaml:"kind"`
	PythonVersion string         `json:"python_version" yaml:"python_version"`
	PURL          string         `json:"purl" yaml:"purl"`
	MetadataPath  string         `json:"metadata_path" yaml:"metadata_path"`
	Metadata      map[string]any `json:"metadata" yaml:"metadata"`

	keys []string
}

func newShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show <file>...",
		Short: "Print the metadata of one or more distributions",
		Long: `Print the kind, python tag, package URL and metadata of each file.

Examples:
  # Everything, as text
  pkginfo show requests-2.32.3-py3-none-any.whl

  # Selected fields
  pkginfo show --field name --field requires_dist foo-1.0.tar.gz

  # Machine-readable
  pkginfo show --format json dist/*`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringSliceVar(&flags.fields, "field", nil, "Only print these fields (header or attribute names)")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", dist.DefaultMaxArchiveSize, "Largest archive to read, in bytes (0 for no limit)")
	return cmd
}

func runShow(cmd *cobra.Command, flags *showFlags, paths []string) error {
	switch flags.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", flags.format)
	}

	logger := loggerFor(cmd)
	opts := []dist.Option{dist.WithLogger(logger), dist.WithMaxArchiveSize(flags.maxSize)}

	reports := []*report{}
	failed := 0
	for _, path := range paths {
		d, err := dist.Open(path, opts...)
		if err != nil {
			logger.Error("%s: %v", path, err)
			failed++
			continue
		}
		reports = append(reports, newReport(path, d, flags.fields))
	}

	if err := write(cmd.OutOrStdout(), flags.format, reports); err != nil {
		return err
	}
	if failed > 0 {
		logger.Info("%d of %d files read", len(paths)-failed, len(paths))
		return fmt.Errorf("%d of %d files could not be read", failed, len(paths))
	}
	return nil
}

func newReport(path string, d *dist.Distribution, fields []string) *report {
	m := d.Metadata()
	r := &report{
		File:          path,
		Kind:          d.Kind().String(),
		PythonVersion: d.PythonVersion(),
		PURL:          d.PURL(),
		MetadataPath:  d.MetadataPath(),
	}

	if len(fields) == 0 {
		r.Metadata = m.AsMap()
		r.keys = m.Keys()
		return r
	}

	r.Metadata = make(map[string]any, len(fields))
	for _, f := range fields {
		r.Metadata[f] = selectField(m, f)
		r.keys = append(r.keys, f)
	}
	return r
}

// selectField returns a string for single-valued fields and a list otherwise.
func selectField(m *core.Metadata, key string) any {
	values := m.GetAll(key)
	if m.Scalar(attrName(key)) != nil {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	if values == nil {
		return []string{}
	}
	return values
}

func attrName(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func write(w io.Writer, format string, reports []*report) error {
	switch format {
	case formatJSON:
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, r)
		}
		return nil
	}
}

func writeText(w io.Writer, r *report) {
	fmt.Fprintf(w, "file: %s\n", r.File)
	fmt.Fprintf(w, "kind: %s\n", r.Kind)
	fmt.Fprintf(w, "python_version: %s\n", r.PythonVersion)
	fmt.Fprintf(w, "purl: %s\n", r.PURL)
	fmt.Fprintf(w, "metadata_path: %s\n", r.MetadataPath)

	for _, k := range r.keys {
		switch v := r.Metadata[k].(type) {
		case string:
			fmt.Fprintf(w, "%s: %s\n", k, indent(v))
		case []string:
			for _, item := range v {
				fmt.Fprintf(w, "%s: %s\n", k, indent(item))
			}
		}
	}
}

// indent keeps multi-line values under their key.
func indent(v string) string {
	return strings.ReplaceAll(v, "\n", "\n    ")
}
