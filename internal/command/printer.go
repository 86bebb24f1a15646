package command

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Printer writes one record at a time to the command output
type Printer interface {
	Print(v any) error
}

// NewPrinter returns the printer for format ("yaml" or "json")
func NewPrinter(format string, w io.Writer) (Printer, error) {
	switch format {
	case "", "yaml":
		return &yamlPrinter{enc: yaml.NewEncoder(w)}, nil
	case "json":
		return &jsonPrinter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// yamlPrinter emits each record as its own YAML document
type yamlPrinter struct {
	enc *yaml.Encoder
}

func (p *yamlPrinter) Print(v any) error {
	return p.enc.Encode(v)
}

// jsonPrinter emits one JSON object per line
type jsonPrinter struct {
	enc *json.Encoder
}

func (p *jsonPrinter) Print(v any) error {
	return p.enc.Encode(v)
}
