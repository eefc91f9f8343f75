package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.bwq")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("apple\r\nAND juice")...)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "apple\nAND juice", f.Text())
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedCRLF)
	assert.Zero(t, f.Flags&FileVirtual)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bwq"))
	require.Error(t, err)
}

func TestFile_Line(t *testing.T) {
	f := NewVirtual("<query>", "first\nsecond\n\nfourth")
	assert.Equal(t, 4, f.LineCount())
	assert.Equal(t, "first", f.Line(1))
	assert.Equal(t, "second", f.Line(2))
	assert.Equal(t, "", f.Line(3))
	assert.Equal(t, "fourth", f.Line(4))
	assert.Equal(t, "", f.Line(5))
	assert.Equal(t, "", f.Line(0))
}

func TestFile_Slice(t *testing.T) {
	f := NewVirtual("<query>", "héllo world")
	sp := NewSpan(pos(1, 1, 0), pos(1, 6, 6))
	assert.Equal(t, "héllo", f.Slice(sp))

	past := NewSpan(pos(1, 1, 9), pos(1, 1, 100))
	assert.Equal(t, "rld", f.Slice(past))
}

func TestFile_DisplayPath(t *testing.T) {
	f := NewFile("some/dir/query.bwq", nil, 0)
	assert.Equal(t, "query.bwq", f.DisplayPath("basename", ""))
	assert.Equal(t, "some/dir/query.bwq", f.DisplayPath("", ""))

	v := NewVirtual("<stdin>", "x")
	assert.Equal(t, "<stdin>", v.DisplayPath("absolute", ""))
}

func TestNormalizeCRLF_KeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	assert.True(t, changed)
	assert.Equal(t, "a\rb\nc", string(out))

	out, changed = normalizeCRLF([]byte("plain"))
	assert.False(t, changed)
	assert.Equal(t, "plain", string(out))
}
