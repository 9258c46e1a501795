package cmd

import (
	"encoding/json"
	"os"
)

// printJSON writes indented JSON to stdout without escaping the
// Japanese text to \u sequences.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
