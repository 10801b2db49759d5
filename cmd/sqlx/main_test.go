// cmd/sqlx/main_test.go
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs root with args and captures its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// sqliteConfig writes a configuration pointing at a fresh sqlite file.
func sqliteConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "sqlx.yaml", fmt.Sprintf(`
database:
  dialect: sqlite
  dsn: %s
logging:
  level: error
  format: text
`, filepath.Join(dir, "cli.db")))
	return dir, cfg
}

func TestExecAndQuery(t *testing.T) {
	color.NoColor = true
	dir, cfg := sqliteConfig(t)

	create := writeFile(t, dir, "create.sql", "CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, email TEXT);")
	insert := writeFile(t, dir, "insert.sql", "INSERT INTO users (name, email) VALUES (?, ?);")
	selectAll := writeFile(t, dir, "select.sql", "SELECT id, name, email FROM users ORDER BY id;")

	out, err := executeCommand(newRootCmd(), "--config", cfg, "exec", create)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Affected rows: 0")

	out, err = executeCommand(newRootCmd(), "-c", cfg, "exec", insert, "jane", "jane@example.com")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Affected rows: 1")
	assert.Contains(t, out, "Last inserted id: 1")

	out, err = executeCommand(newRootCmd(), "-c", cfg, "exec", insert, "john")
	require.Error(t, err, "missing parameter must fail")

	out, err = executeCommand(newRootCmd(), "-c", cfg, "--no-color", "query", selectAll)
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, out)
	assert.Equal(t, "id  name  email", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "--  ----  ----------------", lines[1])
	assert.Equal(t, "1   jane  jane@example.com", lines[2])
	assert.Equal(t, "(1 rows)", lines[3])
}

func TestQueryNullCells(t *testing.T) {
	color.NoColor = true
	dir, cfg := sqliteConfig(t)
	q := writeFile(t, dir, "null.sql", "SELECT NULL AS missing, 'x' AS present;")

	out, err := executeCommand(newRootCmd(), "-c", cfg, "--no-color", "query", q)
	require.NoError(t, err, out)
	assert.Contains(t, out, "NULL     x")
}

func TestExecMissingFile(t *testing.T) {
	_, cfg := sqliteConfig(t)
	_, err := executeCommand(newRootCmd(), "-c", cfg, "exec", filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read sql file")
}

func TestExecBadConfig(t *testing.T) {
	dir := t.TempDir()
	q := writeFile(t, dir, "q.sql", "SELECT 1;")
	_, err := executeCommand(newRootCmd(), "-c", filepath.Join(dir, "missing.yaml"), "exec", q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading configuration")
}

func TestDialects(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "mysql\n")
	assert.Contains(t, out, "sqlite\n")
	assert.Contains(t, out, "generic (render only)")
}

func TestCommandsRequireFile(t *testing.T) {
	for _, name := range []string{"exec", "query"} {
		_, err := executeCommand(newRootCmd(), name)
		assert.Error(t, err, name)
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
}
