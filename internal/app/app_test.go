package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/config"
	"github.com/dmitrijs2005/scewiki/internal/document"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DSN = filepath.Join(t.TempDir(), "nested", "scewiki.db")
	c.MailDelay = 0
	return c
}

func newTestApp(t *testing.T, c *config.Config) (*App, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	a, err := NewApp(context.Background(), c, logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, logs
}

func seed(t *testing.T, a *App) *models.User {
	t.Helper()
	ctx := context.Background()
	admin, err := a.users.Register(ctx, "admin@sce.org", "Director", "pw")
	require.NoError(t, err)
	_, err = a.content.CreateObject(ctx, services.SessionFor(admin), models.NewSCEObject{
		Number:      "SCE-173",
		Name:        "The Sculpture",
		ObjectClass: models.ClassEuclid,
		Description: "Concrete.",
		Containment: "Locked container.",
	})
	require.NoError(t, err)
	return admin
}

func TestNewApp_Backends(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(c *config.Config)
	}{
		{name: "sql tables", prepare: func(c *config.Config) {}},
		{name: "document over sql metadata", prepare: func(c *config.Config) {
			c.Storage = config.StorageDocument
		}},
		{name: "sealed document over sql metadata", prepare: func(c *config.Config) {
			c.Storage = config.StorageDocument
			c.DocumentKey = "correct horse"
		}},
		{name: "document in memory", prepare: func(c *config.Config) {
			c.Storage = config.StorageDocument
			c.KVBackend = config.KVMemory
		}},
		{name: "zap logger", prepare: func(c *config.Config) {
			c.LogBackend = "zap"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.prepare(c)
			a, _ := newTestApp(t, c)
			seed(t, a)

			var out bytes.Buffer
			require.NoError(t, a.Export(context.Background(), &out))

			var doc models.Document
			require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
			require.Len(t, doc.Users, 1)
			require.Len(t, doc.Objects, 1)
			assert.Equal(t, "object_2", doc.Objects[0].ID)
			assert.Equal(t, int64(3), doc.NextID)
			assert.NotContains(t, out.String(), "pw", "password hashes are never exported")
		})
	}
}

func TestNewApp_SQLiteSurvivesRestart(t *testing.T) {
	c := testConfig(t)

	first, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)
	seed(t, first)
	secret, err := first.manager.Metadata().Get(context.Background(), common.SessionSecretKey)
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	require.NoError(t, first.Close())

	second, _ := newTestApp(t, c)
	again, err := second.manager.Metadata().Get(context.Background(), common.SessionSecretKey)
	require.NoError(t, err)
	assert.Equal(t, secret, again)

	u, err := second.users.Authenticate(context.Background(), "admin@sce.org", "pw")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestNewApp_SealKeyOnPlainArchiveFails(t *testing.T) {
	c := testConfig(t)
	c.Storage = config.StorageDocument

	first, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)
	seed(t, first)
	require.NoError(t, first.Close())

	c.DocumentKey = "typo"
	_, err = NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorIs(t, err, document.ErrSealKey)

	c.DocumentKey = ""
	again, _ := newTestApp(t, c)
	u, err := again.users.Authenticate(context.Background(), "admin@sce.org", "pw")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestNewApp_ConfiguredSessionSecret(t *testing.T) {
	c := testConfig(t)
	c.SessionSecret = "from-config"
	a, _ := newTestApp(t, c)

	stored, err := a.manager.Metadata().Get(context.Background(), common.SessionSecretKey)
	require.NoError(t, err)
	assert.Nil(t, stored, "a configured secret is not persisted")
}

func TestNewApp_S3Backend(t *testing.T) {
	mem := kv.NewMemoryStore()
	var got kv.S3Config

	old := newS3Store
	t.Cleanup(func() { newS3Store = old })
	newS3Store = func(_ context.Context, c kv.S3Config) (kv.Store, error) {
		got = c
		return mem, nil
	}

	c := testConfig(t)
	c.Storage = config.StorageDocument
	c.KVBackend = config.KVS3
	c.S3Endpoint = "http://localhost:9000"
	c.S3Prefix = "archive"
	a, _ := newTestApp(t, c)
	seed(t, a)

	assert.Equal(t, "scewiki", got.Bucket)
	assert.Equal(t, "http://localhost:9000", got.Endpoint)
	assert.Equal(t, "archive", got.Prefix)

	raw, err := mem.Get(context.Background(), common.DocumentKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "SCE-173")
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("log backend", func(t *testing.T) {
		c := testConfig(t)
		c.LogBackend = "syslog"
		_, err := NewApp(context.Background(), c, &bytes.Buffer{})
		require.ErrorContains(t, err, "logger init error")
	})

	t.Run("s3", func(t *testing.T) {
		old := newS3Store
		t.Cleanup(func() { newS3Store = old })
		newS3Store = func(context.Context, kv.S3Config) (kv.Store, error) {
			return nil, errors.New("no credentials")
		}

		c := testConfig(t)
		c.Storage = config.StorageDocument
		c.KVBackend = config.KVS3
		_, err := NewApp(context.Background(), c, &bytes.Buffer{})
		require.ErrorContains(t, err, "storage init error: no credentials")
	})
}

func TestApp_MigrateAndShell(t *testing.T) {
	c := testConfig(t)
	c.LogLevel = "debug"
	a, logs := newTestApp(t, c)
	seed(t, a)

	require.NoError(t, a.Migrate(context.Background()))
	assert.Contains(t, logs.String(), "storage is up to date")

	var out bytes.Buffer
	require.NoError(t, a.RunShell(context.Background(), strings.NewReader("objects\nexit\n"), &out))
	assert.Contains(t, out.String(), "SCE-173")
	assert.Contains(t, out.String(), "Bye!")
	assert.Contains(t, logs.String(), "starting shell")
}
