package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type format string

const (
	formatYAML format = "yaml"
	formatJSON format = "json"
)

func parseFormat(s string) (format, error) {
	switch s {
	case "yaml", "yml", "":
		return formatYAML, nil
	case "json":
		return formatJSON, nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// writeOutput writes data to w in the given format.
func writeOutput(w io.Writer, f format, data any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", f)
	}
}
