package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short=false")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "intervue "+version+" (go"), out)

	out, err = execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestUpdateCommand_DevBuild(t *testing.T) {
	require.Equal(t, "(devel)", version)

	out, err := execute(t, "", "update", "--check=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Cannot update a development build")

	out, err = execute(t, "", "update", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "Development build")
}
