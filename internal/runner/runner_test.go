package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvolkava/roomcensus/internal/catalog"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func TestNewRunnerPanicsOnNilCatalog(t *testing.T) {
	assert.Panics(t, func() {
		NewRunner(nil)
	})
}

func TestRunUnknownQuery(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	r := NewRunner(cat)

	// An unknown name must fail on catalog lookup, before the connection
	// is touched, so a nil connection is safe here.
	result, err := r.Run(context.Background(), nil, "rooms_per_student")
	assert.Empty(t, result.Columns)
	assert.Empty(t, result.Rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, roomcensus.ErrUnknownQuery)
	assert.Contains(t, err.Error(), `"rooms_per_student"`)
	assert.Equal(t, roomcensus.ExitUnknownQuery, roomcensus.ExitCodeForError(err))
}

func TestNamesMatchCatalogOrder(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	r := NewRunner(cat)

	assert.Equal(t, cat.Names(), r.Names())
}
