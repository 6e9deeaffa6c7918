// Package importer reads JSON backup documents. It decides only whether a
// document is recognizable at all; field-level repair is the normalizer's
// job.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/fatura/internal/encoding"
)

// ErrUnrecognized marks input that is not a backup document: either not a
// JSON object, or an object carrying none of the known top-level sections.
// Imports failing this check must leave the current state untouched.
var ErrUnrecognized = errors.New("not a recognizable backup document")

// Sections that identify a backup document. One present key is enough;
// everything else is repairable.
var knownSections = []string{"clients", "invoices", "settings"}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse decodes a backup document from r, tolerating legacy charsets.
// It returns the raw decoded value for normalization, or ErrUnrecognized
// (or a parse error) when the input must be rejected.
func (s *Service) Parse(r io.Reader) (any, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var raw any
	if err := json.NewDecoder(utf8r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing backup: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrUnrecognized
	}

	for _, key := range knownSections {
		if _, present := obj[key]; present {
			return raw, nil
		}
	}

	return nil, ErrUnrecognized
}
