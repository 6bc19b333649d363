// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic scanning, lookup and the help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"paths.md":          {Data: []byte("# Paths\n\nTyped paths.")},
		"retry.txt":         {Data: []byte("Retry details")},
		"option-timeout.md": {Data: []byte("# --timeout\n\nBound the retry.")},
		"nested/config.md":  {Data: []byte("# Config")},
		"notes.json":        {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"config", "option-timeout", "paths", "retry"}, tm.ListTopics())

		topic, ok := tm.GetTopic("retry")
		require.True(t, ok)
		assert.Equal(t, "Retry details", topic.Content)
		assert.Equal(t, "retry.txt", topic.Path)

		_, ok = tm.GetTopic("notes")
		assert.False(t, ok)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".json"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"--timeout", "-timeout", "timeout", "option-timeout"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-timeout", topic.Name)
	}
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "raw text", g.Render("raw text", ".txt"), "only markdown is rendered")

	out := g.Render("# Title\n\nSome *body* text.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
	assert.NotEqual(t, "# Title\n\nSome *body* text.", out)
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "write", Short: "Write things", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, Initialize(root, testFS()))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "retry"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Retry details", out.String())
	})

	t.Run("list", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		text := out.String()
		assert.Contains(t, text, "General topics:")
		assert.Contains(t, text, "  paths\n")
		assert.Contains(t, text, "Option topics:")
		assert.Contains(t, text, "  --timeout\n")
		assert.True(t, strings.HasSuffix(text, "Use 'app help <topic>' to read about a specific topic.\n"))
	})

	t.Run("command_fallback", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "write"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Write things")
	})

	t.Run("empty_fs_root_without_subcommands", func(t *testing.T) {
		root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
		require.NoError(t, Initialize(root, fstest.MapFS{}))
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "No help topics available.\n", out.String())
	})

	t.Run("initialize_twice_keeps_one_help_command", func(t *testing.T) {
		root, out := newApp(t)
		require.NoError(t, Initialize(root, testFS()))

		var helps int
		for _, c := range root.Commands() {
			if c.Name() == "help" {
				helps++
			}
		}
		assert.Equal(t, 1, helps)

		root.SetArgs([]string{"help", "paths"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Typed paths.")
	})
}
