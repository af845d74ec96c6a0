// Package cache caché en memoria de resúmenes del dashboard (github.com/patrickmn/go-cache).
package cache

import (
	"time"

	goCache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

var (
	_ analytics.SummaryCache     = (*DashboardCache)(nil)
	_ billing.SummaryInvalidator = (*DashboardCache)(nil)
)

const keyPrefix = "dashboard:summary:"

// DashboardCache resumen por usuario con expiración. TTL cero desactiva la caché.
type DashboardCache struct {
	cache   *goCache.Cache
	enabled bool
}

// NewDashboardCache crea la caché con el TTL indicado; la limpieza corre cada 2×TTL.
func NewDashboardCache(ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		return &DashboardCache{enabled: false}
	}
	return &DashboardCache{
		cache:   goCache.New(ttl, 2*ttl),
		enabled: true,
	}
}

// Get devuelve el resumen cacheado del usuario.
func (c *DashboardCache) Get(userID string) (*dto.DashboardSummaryDTO, bool) {
	if !c.enabled {
		return nil, false
	}
	v, ok := c.cache.Get(keyPrefix + userID)
	if !ok {
		return nil, false
	}
	s, ok := v.(*dto.DashboardSummaryDTO)
	return s, ok
}

// Set guarda el resumen con el TTL por defecto.
func (c *DashboardCache) Set(userID string, summary *dto.DashboardSummaryDTO) {
	if !c.enabled || summary == nil {
		return
	}
	c.cache.SetDefault(keyPrefix+userID, summary)
}

// Invalidate descarta el resumen del usuario; se llama tras cada cambio en facturas o clientes.
func (c *DashboardCache) Invalidate(userID string) {
	if !c.enabled {
		return
	}
	c.cache.Delete(keyPrefix + userID)
}
