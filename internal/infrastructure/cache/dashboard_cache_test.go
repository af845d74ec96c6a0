package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/cache"
)

func TestDashboardCache_SetGetInvalidate(t *testing.T) {
	c := cache.NewDashboardCache(time.Minute)
	s := &dto.DashboardSummaryDTO{TotalInvoices: 3}

	c.Set("u-1", s)
	got, ok := c.Get("u-1")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = c.Get("u-2")
	assert.False(t, ok, "las entradas son por usuario")

	c.Invalidate("u-1")
	_, ok = c.Get("u-1")
	assert.False(t, ok)
}

func TestDashboardCache_Expira(t *testing.T) {
	c := cache.NewDashboardCache(20 * time.Millisecond)
	c.Set("u-1", &dto.DashboardSummaryDTO{})
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("u-1")
	assert.False(t, ok)
}

func TestDashboardCache_TTLCeroDeshabilita(t *testing.T) {
	c := cache.NewDashboardCache(0)
	c.Set("u-1", &dto.DashboardSummaryDTO{})
	_, ok := c.Get("u-1")
	assert.False(t, ok)
	assert.NotPanics(t, func() { c.Invalidate("u-1") })
}
