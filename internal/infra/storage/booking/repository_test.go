package booking

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSumOccupiedQuery(t *testing.T) {
	query, args, err := buildSumOccupiedQuery([]string{"d1", "d2"})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT departure_id, COALESCE(SUM(total_climbers), 0) FROM bookings "+
			"WHERE departure_id = ANY($1) AND status = ANY($2) GROUP BY departure_id",
		query)
	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]string{"d1", "d2"}), args[0])
	assert.Equal(t, pq.Array([]string{"DEPOSIT_PAID", "CONFIRMED", "COMPLETED"}), args[1])
}
