package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReportArchive_PutAndList(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryReportArchive()
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	tick := 0
	a.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	require.NoError(t, a.Put(ctx, "reports/u1/a.pdf", []byte("aaa"), "application/pdf"))
	require.NoError(t, a.Put(ctx, "reports/u1/b.xlsx", []byte("bb"), "application/xlsx"))
	require.NoError(t, a.Put(ctx, "reports/u2/c.pdf", []byte("c"), "application/pdf"))

	items, err := a.List(ctx, "reports/u1/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "reports/u1/b.xlsx", items[0].Key)
	assert.Equal(t, int64(2), items[0].Size)
	assert.Equal(t, "reports/u1/a.pdf", items[1].Key)

	body, ct, ok := a.Get("reports/u2/c.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("c"), body)
	assert.Equal(t, "application/pdf", ct)
}

func TestMemoryReportArchive_CopiesBody(t *testing.T) {
	a := NewMemoryReportArchive()
	body := []byte("original")
	require.NoError(t, a.Put(context.Background(), "k", body, "text/plain"))
	body[0] = 'X'

	got, _, _ := a.Get("k")
	assert.Equal(t, "original", string(got))
}

func TestMemoryReportArchive_EmptyKey(t *testing.T) {
	err := NewMemoryReportArchive().Put(context.Background(), "", nil, "")
	assert.Error(t, err)
}

func TestMemoryReportArchive_ListEmpty(t *testing.T) {
	items, err := NewMemoryReportArchive().List(context.Background(), "reports/x/")
	require.NoError(t, err)
	assert.Empty(t, items)
}
