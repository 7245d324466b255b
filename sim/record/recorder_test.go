package record

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRecorder(t *testing.T) (DataRecorder, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), db
}

type sampleEntry struct {
	Name  string
	Count int
	Score float64
}

func TestRecorder_RoundTrip(t *testing.T) {
	rec, db := newMemoryRecorder(t)

	rec.CreateTable("samples", sampleEntry{})
	rec.InsertData("samples", sampleEntry{Name: "a", Count: 1, Score: 0.5})
	rec.InsertData("samples", sampleEntry{Name: "b", Count: 2, Score: 1.5})
	rec.Flush()

	rows, err := db.Query("SELECT Name, Count, Score FROM samples ORDER BY Count")
	require.NoError(t, err)
	defer rows.Close()

	var got []sampleEntry
	for rows.Next() {
		var e sampleEntry
		require.NoError(t, rows.Scan(&e.Name, &e.Count, &e.Score))
		got = append(got, e)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []sampleEntry{
		{Name: "a", Count: 1, Score: 0.5},
		{Name: "b", Count: 2, Score: 1.5},
	}, got)
}

func TestRecorder_FlushTwiceDoesNotDuplicate(t *testing.T) {
	rec, db := newMemoryRecorder(t)

	rec.CreateTable("samples", sampleEntry{})
	rec.InsertData("samples", sampleEntry{Name: "a", Count: 1})
	rec.Flush()
	rec.Flush()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRecorder_ListTables(t *testing.T) {
	rec, _ := newMemoryRecorder(t)

	rec.CreateTable("one", sampleEntry{})
	rec.CreateTable("two", sampleEntry{})

	assert.ElementsMatch(t, []string{"one", "two"}, rec.ListTables())
}

func TestRecorder_RejectsNonScalarFields(t *testing.T) {
	rec, _ := newMemoryRecorder(t)

	type bad struct {
		Values []int
	}
	assert.Panics(t, func() { rec.CreateTable("bad", bad{}) })
}

func TestRecorder_InsertIntoUnknownTablePanics(t *testing.T) {
	rec, _ := newMemoryRecorder(t)
	assert.Panics(t, func() { rec.InsertData("missing", sampleEntry{}) })
}

func TestRecorder_InsertWrongTypePanics(t *testing.T) {
	rec, _ := newMemoryRecorder(t)
	rec.CreateTable("samples", sampleEntry{})

	type other struct {
		Name string
	}
	assert.Panics(t, func() { rec.InsertData("samples", other{}) })
}
