package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mahdiidarabi/chainsig/internal/config"
)

// field is one named value of a command result. Fields keep their order in
// text output.
type field struct {
	Name  string
	Value any
}

// printResult writes fields as "name: value" lines or as one JSON object.
func (a *app) printResult(w io.Writer, fields ...field) error {
	if a.cfg != nil && a.cfg.Output == config.OutputJSON {
		obj := make(map[string]any, len(fields))
		for _, f := range fields {
			obj[f.Name] = f.Value
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(obj)
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s: %v\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}
