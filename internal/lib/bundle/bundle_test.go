package bundle

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestUnpack(t *testing.T) {
	archive := makeZip(t, map[string]string{
		"src/App.jsx":    "class App {}",
		"src/index.js":   "render()",
		"assets/logo.md": "# logo",
	})

	files, err := Unpack(archive)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = string(f.Data)
	}
	assert.Equal(t, "class App {}", byPath["src/App.jsx"])
	assert.Equal(t, "render()", byPath["src/index.js"])
}

func TestUnpack_IllegalPath(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "выход из корня архива", entry: "../evil.js"},
		{name: "выход через вложенность", entry: "a/../../evil.js"},
		{name: "абсолютный путь", entry: "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := makeZip(t, map[string]string{tt.entry: "x"})

			_, err := Unpack(archive)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "illegal path")
		})
	}
}

func TestUnpack_NotAZip(t *testing.T) {
	_, err := Unpack([]byte("plain text, not an archive"))
	require.Error(t, err)
}

func TestPackUnpack(t *testing.T) {
	in := []File{
		{Path: "src/App.jsx", Data: []byte("const App = () => null")},
		{Path: "src/util/helpers.js", Data: []byte("export {}")},
	}

	archive, err := Pack(in)
	require.NoError(t, err)

	out, err := Unpack(archive)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
