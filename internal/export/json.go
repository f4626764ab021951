package export

import (
	"encoding/json"
	"io"
)

// JSON writes the full report with its recommendations as indented JSON.
func JSON(w io.Writer, in Input) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(in)
}
