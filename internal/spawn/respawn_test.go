package spawn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespawnQueue_DrainDue(t *testing.T) {
	q := NewRespawnQueue()
	base := time.Unix(1_700_000_000, 0)

	q.Schedule(base.Add(9 * time.Second))
	q.Schedule(base.Add(5 * time.Second))
	q.Schedule(base.Add(7 * time.Second))
	require.Equal(t, 3, q.Len())

	next, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, base.Add(5*time.Second), next)

	assert.Empty(t, q.DrainDue(base.Add(4*time.Second)))

	due := q.DrainDue(base.Add(7 * time.Second))
	require.Len(t, due, 2)
	assert.Equal(t, base.Add(5*time.Second), due[0].At)
	assert.Equal(t, base.Add(7*time.Second), due[1].At, "a task due exactly now is ready")
	assert.Equal(t, 1, q.Len())

	assert.Len(t, q.DrainDue(base.Add(time.Minute)), 1)
	_, ok = q.Next()
	assert.False(t, ok)
}
