package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v in the structured formats and defers to text otherwise.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// streamEncoder writes one record per call. JSON records are compact, one
// per line; YAML records are separate documents.
type streamEncoder struct {
	format string
	json   *json.Encoder
	yaml   *yaml.Encoder
	text   func(io.Writer, any) error
	w      io.Writer
}

func newStreamEncoder(w io.Writer, format string, text func(io.Writer, any) error) *streamEncoder {
	s := &streamEncoder{format: format, text: text, w: w}
	switch format {
	case formatJSON:
		s.json = json.NewEncoder(w)
	case formatYAML:
		s.yaml = yaml.NewEncoder(w)
		s.yaml.SetIndent(2)
	}
	return s
}

func (s *streamEncoder) Encode(v any) error {
	switch {
	case s.json != nil:
		return s.json.Encode(v)
	case s.yaml != nil:
		return s.yaml.Encode(v)
	default:
		return s.text(s.w, v)
	}
}

func (s *streamEncoder) Close() error {
	if s.yaml != nil {
		return s.yaml.Close()
	}
	return nil
}
