package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add clients table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, mf.UpPath, "_add_clients_table.up.sql")
		assert.Contains(t, mf.DownPath, "_add_clients_table.down.sql")
		assert.Len(t, mf.Version, 14)
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := t.TempDir() + "/nested/migrations"

		_, err := CreateMigration(dir, "init")
		require.NoError(t, err)

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_clients_table", sanitizeName("Add Clients Table"))
	assert.Equal(t, "fix_ref_buckets", sanitizeName("fix--ref__buckets!"))
	assert.Equal(t, "v2_schema", sanitizeName("  v2 schema  "))
}

func TestListMigrations(t *testing.T) {
	t.Run("lists up migrations only", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(dir+"/001_init.up.sql", nil, 0o644))
		require.NoError(t, os.WriteFile(dir+"/001_init.down.sql", nil, 0o644))
		require.NoError(t, os.WriteFile(dir+"/002_filings.up.sql", nil, 0o644))
		require.NoError(t, os.WriteFile(dir+"/notes.txt", nil, 0o644))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_init", "002_filings"}, migrations)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		migrations, err := ListMigrations(t.TempDir() + "/absent")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
