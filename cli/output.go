package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
)

// Output format constants
const (
	OutputFormatJSON = "json"
	OutputFormatText = "text"
)

// detectOutputFormat prefers JSON when stdout is not a terminal so scripts
// can parse results.
func detectOutputFormat(explicit string) string {
	if explicit != "" {
		return explicit
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return OutputFormatText
	}
	return OutputFormatJSON
}

// writeResult prints v as indented JSON or as the text produced by text.
func writeResult(w io.Writer, format string, v any, text func() string) error {
	if format == OutputFormatJSON {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = w.Write(pretty.Pretty(data))
		return err
	}
	_, err := fmt.Fprintln(w, text())
	return err
}
