package database

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	content := `-- questions
CREATE TABLE questions (id VARCHAR2(26) PRIMARY KEY);

CREATE INDEX idx_questions_level ON questions (approval_level);
-- trailing comment
`
	stmts := splitStatements(content)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE questions (id VARCHAR2(26) PRIMARY KEY)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_questions_level ON questions (approval_level)", stmts[1])
}

func TestRunMigrations_OracleFilesInOrder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "oracle")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000002_second.up.sql"), []byte("CREATE TABLE b (id NUMBER);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_first.up.sql"), []byte("CREATE TABLE a (id NUMBER);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_first.down.sql"), []byte("DROP TABLE a;"), 0o644))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id NUMBER)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id NUMBER)")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(db, "oracle", root))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, RunMigrations(db, "mysql", t.TempDir()))
}

func TestNewSQLXDB_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLXDB("sqlite3", "file::memory:")
	assert.Error(t, err)
}
