// Package yamlutil isolates the YAML library behind a small decode/encode API.
// JSON documents are valid YAML, so legacy JSON config files decode here too.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded documents (1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge  = errors.New("yamlutil: document exceeds maximum size")
)

func checkDecode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Decode parses data into v, ignoring unknown fields.
func Decode(data []byte, v any) error {
	if err := checkDecode(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeStrict parses data into v and rejects unknown fields.
func DecodeStrict(data []byte, v any) error {
	if err := checkDecode(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode renders v as block-style YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
