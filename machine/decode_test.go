package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecode_AllFormatsAgree(t *testing.T) {
	want, err := Decode(readTestdata(t, "toggle.yaml"), FormatYAML)
	require.NoError(t, err)

	jsonDef, err := Decode(readTestdata(t, "toggle.json"), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, want, jsonDef)

	tomlDef, err := Decode(readTestdata(t, "toggle.toml"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, want, tomlDef)

	assert.Equal(t, "toggle", want.Name)
	assert.Equal(t, "off", want.Initial)
	assert.Len(t, want.Regions, 3)
	assert.Len(t, want.States, 3)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	tests := map[string]struct {
		data   string
		format Format
	}{
		"json": {
			data:   `{"name":"m","initial":"a","states":[{"name":"a"}],"extra":1}`,
			format: FormatJSON,
		},
		"yaml": {
			data:   "name: m\ninitial: a\nstates:\n  - name: a\nextra: 1\n",
			format: FormatYAML,
		},
		"toml": {
			data:   "name = \"m\"\ninitial = \"a\"\nextra = 1\n[[states]]\nname = \"a\"\n",
			format: FormatTOML,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecode_ValidatesResult(t *testing.T) {
	_, err := Decode([]byte(`{"name":"m","initial":"missing","states":[{"name":"a"}]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode([]byte("{}"), FormatUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFor(t *testing.T) {
	tests := map[string]struct {
		location    string
		contentType string
		want        Format
	}{
		"json path":             {location: "m.json", want: FormatJSON},
		"yml path":              {location: "/defs/m.YML", want: FormatYAML},
		"toml file url":         {location: "file:///defs/m.toml", want: FormatTOML},
		"url with query":        {location: "https://x.test/m.yaml?v=2", want: FormatYAML},
		"content type json":     {location: "https://x.test/m", contentType: "application/json; charset=utf-8", want: FormatJSON},
		"content type yaml":     {location: "https://x.test/m", contentType: "application/yaml", want: FormatYAML},
		"content type toml":     {location: "https://x.test/m", contentType: "application/toml", want: FormatTOML},
		"extension wins":        {location: "https://x.test/m.toml", contentType: "application/json", want: FormatTOML},
		"nothing to go on":      {location: "https://x.test/m", want: FormatUnknown},
		"unrelated contenttype": {location: "m", contentType: "text/html", want: FormatUnknown},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.location, tt.contentType))
		})
	}
}
