package syntax

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format selects an AST output representation.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
	FormatSource  Format = "source"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatMermaid, FormatSource}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown AST format %q (want text, json, mermaid or source)", s)
}

// FormatForFile picks the format for an export file from its extension.
func FormatForFile(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mmd", ".mermaid":
		return FormatMermaid
	case ".json":
		return FormatJSON
	case ".bl":
		return FormatSource
	}
	return FormatText
}

// Export writes prog to w in format f.
func Export(w io.Writer, prog *Block, f Format) error {
	switch f {
	case FormatText:
		return Fprint(w, prog)
	case FormatJSON:
		return FprintJSON(w, prog)
	case FormatMermaid:
		return FprintMermaid(w, prog)
	case FormatSource:
		return FprintSource(w, prog)
	}
	return fmt.Errorf("unknown AST format %q", f)
}

// ExportFile writes prog to filename in the format implied by its
// extension, replacing any existing file.
func ExportFile(prog *Block, filename string) (err error) {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Export(out, prog, FormatForFile(filename))
}
