package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, DefaultHistorySize, h.maxSize)
	if !filepath.IsAbs(h.file) {
		assert.Equal(t, filepath.Join(".csrftok", "history"), h.file)
	}
	assert.Equal(t, "history", filepath.Base(h.file))
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistoryFile("")
	h.maxSize = 3

	for i := 1; i <= 4; i++ {
		h.Add(fmt.Sprintf("cmd%d", i))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "cmd2", h.entries[0])
}

func TestHistory_Get(t *testing.T) {
	h := NewHistoryFile("")
	h.Add("secret")
	h.Add("create")
	h.Add("verify")

	tests := []struct {
		index int
		want  string
	}{
		{0, "verify"},
		{1, "create"},
		{2, "secret"},
		{3, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, h.Get(tt.index), "Get(%d)", tt.index)
	}
}

func TestHistory_ScrubsSecrets(t *testing.T) {
	h := NewHistoryFile("")
	h.Add("secret set EA3SsAG5xtf42T6JJ7AbG7dj")
	h.Add("set hmac_key topsecret")
	h.Add("set algorithm sha1")
	h.Add("secret")

	want := []string{"secret set ***", "set hmac_key ***", "set algorithm sha1", "secret"}
	assert.Equal(t, want, h.Entries())
}

func TestHistory_ScrubsQuotedCommands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`'secret' set EA3SsAG5xtf42T6JJ7AbG7dj`, "secret set ***"},
		{`secret "set" abc`, "secret set ***"},
		{`"set" hmac_key topsecret`, "set hmac_key ***"},
		{`set 'hmac_key' "top secret"`, "set hmac_key ***"},
		{`secret set 'unterminated`, "secret set ***"},
		{`"set" algorithm sha1`, `"set" algorithm sha1`},
	}

	for _, tt := range tests {
		h := NewHistoryFile("")
		h.Add(tt.in)
		assert.Equal(t, tt.want, h.Get(0), "Add(%q)", tt.in)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", ".csrftok", "history")

	h := NewHistoryFile(file)
	h.Add("secret")
	h.Add("create alice")
	require.NoError(t, h.Save())

	info, err := os.Stat(file)
	require.NoError(t, err, "history file was not created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	h2 := NewHistoryFile(file)
	require.NoError(t, h2.Load())
	assert.Equal(t, 2, h2.Len())
	assert.Equal(t, "create alice", h2.Get(0))
}

func TestHistory_Load_NonexistentFile(t *testing.T) {
	h := NewHistoryFile(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, h.Load())
	assert.Zero(t, h.Len())
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistoryFile("")
	h.Add("secret")
	assert.NoError(t, h.Save())
	assert.NoError(t, h.Load())
}
