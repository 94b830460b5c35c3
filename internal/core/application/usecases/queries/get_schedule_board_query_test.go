package queries_test

import (
	"testing"
	"time"

	"dinner/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetScheduleBoardQuery_Valid(t *testing.T) {
	day := time.Date(2027, 3, 2, 15, 0, 0, 0, time.UTC)
	query, err := queries.NewGetScheduleBoardQuery(day)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, day, query.Day())
}

func TestNewGetScheduleBoardQuery_ZeroDay(t *testing.T) {
	_, err := queries.NewGetScheduleBoardQuery(time.Time{})
	require.Error(t, err)
}

func TestGetScheduleBoardQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetScheduleBoardQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetScheduleBoardQueryIsNotConstructed)
}
