package admin

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSampleDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE samples (id INTEGER PRIMARY KEY, name TEXT)`)
	for n := 1; n <= maxSQLRows+5; n++ {
		db.MustExec(`INSERT INTO samples (name) VALUES (?)`, fmt.Sprintf("row-%d", n))
	}
	return db
}

func TestCollectRows(t *testing.T) {
	db := openSampleDB(t)

	rows, err := db.Queryx(`SELECT id, name FROM samples ORDER BY id LIMIT 3`)
	require.NoError(t, err)
	defer rows.Close()

	columns, results, err := collectRows(rows, maxSQLRows)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, columns)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"1", "row-1"}, results[0])
	assert.Equal(t, []string{"3", "row-3"}, results[2])
}

func TestCollectRowsCapsOutput(t *testing.T) {
	db := openSampleDB(t)

	rows, err := db.Queryx(`SELECT id, name FROM samples ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	_, results, err := collectRows(rows, maxSQLRows)
	require.NoError(t, err)
	assert.Len(t, results, maxSQLRows)
}

func TestClampCodeBlock(t *testing.T) {
	short := "```sql\nok\n```"
	assert.Equal(t, short, clampCodeBlock(short))

	long := "```sql\n" + strings.Repeat("é", 3000) + "\n```"
	clamped := clampCodeBlock(long)
	assert.LessOrEqual(t, utf8.RuneCountInString(clamped), 1990)
	assert.True(t, utf8.ValidString(clamped))
	assert.True(t, strings.HasSuffix(clamped, "...```"))
}
