package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, in string, args ...string) string {
	t.Helper()
	defer func() {
		if appCtx != nil {
			_ = appCtx.Close()
			appCtx = nil
		}
	}()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(in))
	root.SetOut(&out)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestConfigArgs(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--dsn", "x.db", "-s", "document", "--log-level=debug"}))

	got := configArgs(root.Flags())
	assert.Equal(t, []string{"-d", "x.db", "-l", "debug", "-s", "document"}, got, "flags are visited in name order")
}

func TestCommands(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "scewiki.db")

	execute(t, "", "-d", dsn, "migrate")

	out := execute(t, "objects\nexit\n", "-d", dsn)
	assert.Contains(t, out, "No objects yet.")
	assert.Contains(t, out, "Bye!")

	out = execute(t, "", "--dsn", dsn, "export")
	var doc models.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Empty(t, doc.Users)
	assert.Equal(t, int64(1), doc.NextID)
}

func TestCommands_BadConfig(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"-s", "floppy", "export"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	require.ErrorContains(t, err, `unknown storage "floppy"`)
	assert.Nil(t, appCtx)
}
