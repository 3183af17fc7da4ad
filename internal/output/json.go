package output

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Response is the envelope every JSON command result is wrapped in.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func Error(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

type Config struct {
	Writer io.Writer
	Pretty bool
}

// DefaultConfig writes to w, indenting when PAYERR_PRETTY_JSON is set.
func DefaultConfig(w io.Writer) Config {
	v := os.Getenv("PAYERR_PRETTY_JSON")
	return Config{Writer: w, Pretty: v == "1" || v == "true"}
}

func PrintWith(cfg Config, v any) error {
	enc := json.NewEncoder(cfg.Writer)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func PrintSuccess(cfg Config, data any) error {
	return PrintWith(cfg, Success(data))
}

func PrintError(cfg Config, err error) error {
	return PrintWith(cfg, Error(err))
}

// PrintYAML writes v as a bare YAML document, without the envelope.
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
