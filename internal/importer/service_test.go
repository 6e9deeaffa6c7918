package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fatura/internal/importer"
)

func TestParse_AcceptsPartialDocuments(t *testing.T) {
	inputs := []string{
		`{"invoices": []}`,
		`{"clients": [{"name": "Acme"}]}`,
		`{"settings": {"currency": "USD"}}`,
		`{"settings": null, "extra": true}`,
	}

	svc := importer.NewService()

	for _, input := range inputs {
		raw, err := svc.Parse(strings.NewReader(input))
		require.NoError(t, err, input)
		assert.NotNil(t, raw)
	}
}

func TestParse_RejectsUnrecognized(t *testing.T) {
	inputs := map[string]string{
		"unknown keys": `{"foo": 1}`,
		"empty object": `{}`,
		"array":        `[1, 2, 3]`,
		"scalar":       `42`,
		"string":       `"hello"`,
		"null":         `null`,
	}

	svc := importer.NewService()

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, importer.ErrUnrecognized)
		})
	}
}

func TestParse_RejectsBrokenJSON(t *testing.T) {
	_, err := importer.NewService().Parse(strings.NewReader(`{"clients": [`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, importer.ErrUnrecognized)
}

func TestParse_DecodesUTF16Backup(t *testing.T) {
	// `{"clients":[]}` as UTF-16 LE with BOM, as saved by some Windows editors.
	content := `{"clients":[]}`
	encoded := []byte{0xFF, 0xFE}

	for _, r := range content {
		encoded = append(encoded, byte(r), 0x00)
	}

	raw, err := importer.NewService().Parse(strings.NewReader(string(encoded)))
	require.NoError(t, err)

	obj, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "clients")
}
