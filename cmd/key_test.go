package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "********wxyz", maskKey("sk-abcdefwxyz"))
	assert.Equal(t, "***", maskKey("abc"))
}

func TestKeyCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "intervue.db")

	out, err := execute(t, "", "key", "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No API key stored.")

	out, err = execute(t, "", "key", "set", "openai", "sk-test-1234", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "********1234")

	out, err = execute(t, "", "key", "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "openai")
	assert.NotContains(t, out, "sk-test")

	out, err = execute(t, "sk-from-stdin-9876\n", "key", "set", "gemini", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "9876")

	_, err = execute(t, "", "key", "clear", "gemini", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "", "key", "clear", "openai", "--db", db)
	require.NoError(t, err)

	out, err = execute(t, "", "key", "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No API key stored.")
}

func TestKeySet_RejectsUnknownProvider(t *testing.T) {
	db := filepath.Join(t.TempDir(), "intervue.db")
	_, err := execute(t, "", "key", "set", "acme", "k", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}
