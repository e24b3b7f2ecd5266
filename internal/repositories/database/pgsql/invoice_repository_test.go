package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/utils/numbering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreationStamp_FirstInvoiceUsesNow(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 123456789, time.UTC)
	assert.Equal(t, now.Truncate(time.Microsecond), creationStamp(now, nil))
}

func TestCreationStamp_LaterClockWins(t *testing.T) {
	latest := &latestInvoice{Number: "FAC-0004", CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	now := latest.CreatedAt.Add(time.Second)
	assert.Equal(t, now, creationStamp(now, latest))
}

// A request whose clock reading predates the latest invoice must still sort after it,
// otherwise the next allocation would reuse the number it just took.
func TestCreationStamp_StaleClockFollowsLatest(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(50 * time.Millisecond)

	// B stamped t2, took the lock first and inserted FAC-0005.
	invoices := []latestInvoice{{Number: "FAC-0005", CreatedAt: creationStamp(t2, &latestInvoice{Number: "FAC-0004", CreatedAt: t1.Add(-time.Hour)})}}

	// A stamped t1 earlier, then inserts FAC-0006 under the lock.
	last := invoices[0]
	next, err := numbering.Next(numbering.DefaultPrefix, &last.Number)
	require.NoError(t, err)
	invoices = append(invoices, latestInvoice{Number: next, CreatedAt: creationStamp(t1, &last)})

	newest := invoices[0]
	for _, inv := range invoices[1:] {
		if inv.CreatedAt.After(newest.CreatedAt) {
			newest = inv
		}
	}
	assert.Equal(t, "FAC-0006", newest.Number)
	assert.True(t, invoices[1].CreatedAt.After(invoices[0].CreatedAt))

	following, err := numbering.Next(numbering.DefaultPrefix, &newest.Number)
	require.NoError(t, err)
	assert.Equal(t, "FAC-0007", following)
}

func TestCreationStamp_EqualTimestampsStayOrdered(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	stamp := creationStamp(at, &latestInvoice{Number: "FAC-0001", CreatedAt: at})
	assert.Equal(t, at.Add(time.Microsecond), stamp)
}
