package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/openapi-serializer-go/pkg/schema"
	"github.com/lk2023060901/openapi-serializer-go/pkg/serializer"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

type greeting struct{}

func init() {
	schema.Default().MustRegister(schema.Object[greeting]("ApplicationGreeting").
		Getter("greeting", func(greeting) any { return "hello world" }).
		MustBuild())
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunWithArgs(t *testing.T) {
	path := writeConfig(t, `
logging:
  serializer:
    level: debug
serializer:
  max-depth: 8
  batch-prealloc: true
  batch-expiry: 30s
`)
	app := New()
	require.NoError(t, app.RunWithArgs([]string{"--config", path}))
	defer app.Close()

	assert.NotNil(t, app.Config())
	assert.Equal(t, "json", app.Encoder().Name())
	assert.NotNil(t, app.Serializer())
	assert.NotNil(t, app.Logger("serializer"))
	assert.NotNil(t, app.Logger("unknown"))

	data, contentEncoding, err := app.Render(greeting{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"greeting":"hello world"}`, string(data))
	assert.Empty(t, contentEncoding)

	out, err := app.Serializer().SerializeBatch([]any{greeting{}, greeting{}}, serializer.Context{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRunWithEncoder(t *testing.T) {
	path := writeConfig(t, "serializer:\n  encoder: jsoniter\n")
	app := New()
	require.NoError(t, app.RunWithArgs([]string{"--config=" + path}))
	defer app.Close()
	assert.Equal(t, "jsoniter", app.Encoder().Name())

	path = writeConfig(t, "serializer:\n  encoder: xml\n")
	err := New().RunWithArgs([]string{"--config", path})
	assert.ErrorIs(t, err, merr.ErrEncoderNotFound)
}

func TestRunWithCompression(t *testing.T) {
	path := writeConfig(t, "serializer:\n  compression: zstd\n")
	app := New()
	require.NoError(t, app.RunWithArgs([]string{"--config", path}))
	defer app.Close()
	assert.Equal(t, "json+zstd", app.Encoder().Name())

	// small bodies stay uncompressed and are reported as such
	data, contentEncoding, err := app.Render(greeting{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"greeting":"hello world"}`, string(data))
	assert.Empty(t, contentEncoding)

	path = writeConfig(t, "serializer:\n  compression: brotli\n")
	assert.ErrorIs(t, New().RunWithArgs([]string{"--config", path}), merr.ErrParameterInvalid)
}

func TestConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "serializer:\n  encoder: proto\n")
	t.Setenv("ZEUS_CONFIG_FILE_PATH", path)

	app := New()
	require.NoError(t, app.RunWithArgs(nil))
	defer app.Close()
	assert.Equal(t, "proto", app.Encoder().Name())
}

func TestLoadConfigErrors(t *testing.T) {
	app := New()
	assert.Error(t, app.RunWithArgs([]string{"--config"}))
	assert.Error(t, app.RunWithArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

	_, _, err := New().Render(greeting{}, nil)
	assert.Error(t, err)
}

func TestGetenv(t *testing.T) {
	t.Setenv("ZEUS_TEST_BOOL", "yes")
	t.Setenv("ZEUS_TEST_STR", "  value ")
	assert.True(t, getenvBool("ZEUS_TEST_BOOL", false))
	assert.True(t, getenvBool("ZEUS_TEST_ABSENT", true))
	assert.Equal(t, "value", getenvDefault("ZEUS_TEST_STR", "def"))
	assert.Equal(t, "def", getenvDefault("ZEUS_TEST_ABSENT", "def"))
}
