package loader

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvolkava/roomcensus/internal/schema"
	testhelper "github.com/kvolkava/roomcensus/internal/testing"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func TestLoaderIntegration(t *testing.T) {
	connString := testhelper.RequireDatabase(t)
	ctx := context.Background()

	cleanup := testhelper.CreateTestDB(t, connString, "loader_test")
	defer cleanup()

	connConfig := testhelper.ParseConnConfig(t, connString)
	connConfig.Database = "loader_test"

	conn, release := testhelper.AcquireSessionConn(t, connConfig)
	defer release()

	require.NoError(t, schema.EnsureTables(ctx, conn))

	l := NewLoader()

	rooms := []roomcensus.Room{
		{ID: 0, Name: "Room #0"},
		{ID: 1, Name: "Room #1"},
		{ID: 2, Name: "Room #2"},
	}
	students := []roomcensus.Student{
		{ID: 0, Name: "Alice", Birthday: time.Date(2011, 8, 22, 0, 0, 0, 0, time.UTC), Sex: "F", Room: 0},
		{ID: 1, Name: "Bob", Birthday: time.Date(2002, 1, 10, 0, 0, 0, 0, time.UTC), Sex: "M", Room: 1},
	}

	countRows := func(table string) int {
		var n int
		require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		return n
	}

	t.Run("loads rooms and students", func(t *testing.T) {
		require.NoError(t, l.LoadRooms(ctx, conn, rooms))
		require.NoError(t, l.LoadStudents(ctx, conn, students))

		assert.Equal(t, 3, countRows("rooms"))
		assert.Equal(t, 2, countRows("students"))
	})

	t.Run("reloading the same files is idempotent", func(t *testing.T) {
		require.NoError(t, l.LoadRooms(ctx, conn, rooms))
		require.NoError(t, l.LoadStudents(ctx, conn, students))

		assert.Equal(t, 3, countRows("rooms"))
		assert.Equal(t, 2, countRows("students"))
	})

	t.Run("student referencing a missing room fails", func(t *testing.T) {
		orphan := []roomcensus.Student{
			{ID: 99, Name: "Eve", Birthday: time.Date(2005, 3, 1, 0, 0, 0, 0, time.UTC), Sex: "F", Room: 999},
		}

		err := l.LoadStudents(ctx, conn, orphan)
		require.Error(t, err)
		assert.ErrorIs(t, err, roomcensus.ErrDatabase)
		assert.Contains(t, err.Error(), "student 99")
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		require.NoError(t, l.LoadRooms(ctx, conn, nil))
		require.NoError(t, l.LoadStudents(ctx, conn, nil))
	})
}
