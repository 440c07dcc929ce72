package departure

import (
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListActiveQuery(t *testing.T) {
	query, args, err := buildListActiveQuery()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT id, route_id, arrival_date"))
	assert.Contains(t, query, "FROM departures WHERE (NOT (status = ANY($1)) OR is_featured = $2)")
	assert.True(t, strings.HasSuffix(query, "ORDER BY route_id ASC, arrival_date ASC, id ASC"))
	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]string{"COMPLETED", "CANCELLED"}), args[0])
	assert.Equal(t, true, args[1])
}
