package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paasboot/paasboot/internal/config"
)

func testDescriptor(t *testing.T) *config.Descriptor {
	t.Helper()
	desc, err := BuildDescriptor(&Result{
		Infrastructure: string(config.InfraEC2),
		Machine:        "ami-0123abcd",
		InstanceType:   "m1.large",
		Keyname:        "appscale",
		Group:          "appscale",
		Min:            "3",
		Max:            "5",
		Table:          string(config.TableCassandra),
	})
	require.NoError(t, err)
	return desc
}

func TestWriteDescriptor_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paasboot.yaml")

	require.NoError(t, WriteDescriptor(testDescriptor(t), path))

	// The written file is a loadable descriptor.
	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Machine)
	assert.Equal(t, "ami-0123abcd", *loaded.Machine)
	require.NotNil(t, loaded.Min)
	assert.Equal(t, 3, *loaded.Min)
	assert.Nil(t, loaded.Table, "default-valued answers are omitted")
}

func TestWriteDescriptor_HeaderAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paasboot.yaml")

	require.NoError(t, WriteDescriptor(testDescriptor(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# paasboot deployment descriptor"))
	assert.Contains(t, content, "paasboot init")
	assert.Contains(t, content, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exists.yaml")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwrite_Injectable(t *testing.T) {
	original := confirmOverwrite
	defer func() { confirmOverwrite = original }()

	confirmOverwrite = func(string) (bool, error) { return true, nil }
	ok, err := ConfirmOverwrite("whatever")
	require.NoError(t, err)
	assert.True(t, ok)
}
