package integration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/integration"
)

func TestRender(t *testing.T) {
	rendered, err := integration.Render()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rendered, "#!"), "script starts with a shebang")
	assert.NotContains(t, rendered, "{{")
	assert.Contains(t, rendered, "foldersize top \"$root\" --output paths")
}
