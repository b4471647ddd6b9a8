package cmd

import (
	"bytes"
	"testing"

	"github.com/kastheco/webmon/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysMarkdownListsEveryFooterKey(t *testing.T) {
	md := keysMarkdown()
	for _, name := range keys.FooterKeys {
		help := keys.GlobalkeyBindings[name].Help()
		assert.Contains(t, md, "`"+help.Key+"`")
		assert.Contains(t, md, help.Desc)
	}
	assert.Contains(t, md, "ctrl+c")
}

func TestRenderKeys(t *testing.T) {
	out, err := renderKeys("notty", 100)
	require.NoError(t, err)
	assert.Contains(t, out, "webmon keys")
	assert.Contains(t, out, "clear marks")
}

func TestKeysCommand(t *testing.T) {
	c := NewKeysCmd()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	assert.Contains(t, buf.String(), "copy id")
}
