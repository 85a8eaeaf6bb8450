package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func singleResult(name string, columns []string, rows [][]any) []roomcensus.NamedResult {
	return []roomcensus.NamedResult{{
		Name:   name,
		Result: roomcensus.ResultSet{Columns: columns, Rows: rows},
	}}
}

func TestExportJSON(t *testing.T) {
	t.Run("one room one student", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := singleResult("students_per_room",
			[]string{"room", "count"},
			[][]any{{"Room A", int64(1)}})

		path, err := w.Export(results, "json")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "result.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[{"room":"Room A","count":1}]`, string(data))
	})

	t.Run("empty result set", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		path, err := w.Export(singleResult("students_per_room", []string{"room", "count"}, nil), "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("keys keep column order", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := singleResult("by_students",
			[]string{"room_id", "room_name", "number_of_students"},
			[][]any{{int64(2), "Room #2", int64(0)}})

		path, err := w.Export(results, "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[{"room_id":2,"room_name":"Room #2","number_of_students":0}]`, string(data))
	})

	t.Run("null values", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := singleResult("by_age_difference",
			[]string{"room_id", "age_difference"},
			[][]any{{int64(1), nil}})

		path, err := w.Export(results, "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[{"room_id":1,"age_difference":null}]`, string(data))
	})

	t.Run("multiple queries wrapped by name", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := []roomcensus.NamedResult{
			{Name: "students_per_room", Result: roomcensus.ResultSet{
				Columns: []string{"room", "count"},
				Rows:    [][]any{{"Room A", int64(1)}},
			}},
			{Name: "by_students", Result: roomcensus.ResultSet{
				Columns: []string{"room_id"},
				Rows:    nil,
			}},
		}

		path, err := w.Export(results, "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			`[{"students_per_room":[{"room":"Room A","count":1}]},{"by_students":[]}]`,
			string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		_, err := w.Export(singleResult("q", []string{"room"}, [][]any{{"Room A"}}), "json")
		require.NoError(t, err)

		path, err := w.Export(singleResult("q", []string{"room"}, nil), "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})
}

func TestExportXML(t *testing.T) {
	t.Run("rows under result root", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := singleResult("students_per_room",
			[]string{"room", "count"},
			[][]any{{"Room A", int64(1)}})

		path, err := w.Export(results, "xml")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "result.xml"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `<result><row><room>Room A</room><count>1</count></row></result>`, string(data))
	})

	t.Run("empty result set yields empty root", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		path, err := w.Export(singleResult("students_per_room", []string{"room", "count"}, nil), "xml")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `<result></result>`, string(data))
	})

	t.Run("null column rendered as empty element", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := singleResult("by_age_difference",
			[]string{"room_id", "age_difference"},
			[][]any{{int64(1), nil}})

		path, err := w.Export(results, "xml")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `<result><row><room_id>1</room_id><age_difference></age_difference></row></result>`, string(data))
	})

	t.Run("multiple queries wrapped in query elements", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriterInDir(dir)

		results := []roomcensus.NamedResult{
			{Name: "students_per_room", Result: roomcensus.ResultSet{
				Columns: []string{"room"},
				Rows:    [][]any{{"Room A"}},
			}},
			{Name: "by_students", Result: roomcensus.ResultSet{
				Columns: []string{"room_id"},
				Rows:    nil,
			}},
		}

		path, err := w.Export(results, "xml")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			`<result><query name="students_per_room"><row><room>Room A</room></row></query><query name="by_students"></query></result>`,
			string(data))
	})
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	w := NewWriterInDir(dir)

	results := singleResult("students_per_room", []string{"room"}, [][]any{{"Room A"}})

	path, err := w.Export(results, "yaml")
	assert.Empty(t, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, roomcensus.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "yaml is not supported as output file format")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output file may be written for an unsupported format")
}

func TestExportNormalizesFormatCase(t *testing.T) {
	dir := t.TempDir()
	w := NewWriterInDir(dir)

	path, err := w.Export(singleResult("q", []string{"room"}, nil), "JSON")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "result.json"), path)
}
