package cache

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"sell/src/sell/infrastructure/metrics"
)

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// ReferenceCache cache en memoria de los datasets de referencia del formulario.
// Cada entrada vence según la ventana de frescura de su dataset.
type ReferenceCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

// NewReferenceCache crea un nuevo cache vacío
func NewReferenceCache() *ReferenceCache {
	return &ReferenceCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Key arma la clave de un dataset para una empresa
func Key(dataset string, tenantID int64) string {
	return fmt.Sprintf("%s:%d", dataset, tenantID)
}

// Get obtiene una entrada vigente
func (c *ReferenceCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set guarda una entrada por ttl
func (c *ReferenceCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
}

// GetOrLoad retorna la entrada vigente o la carga con load. Los errores no se
// cachean: la próxima lectura vuelve a intentar.
func (c *ReferenceCache) GetOrLoad(key string, ttl time.Duration, load func() (interface{}, error)) (interface{}, error) {
	dataset := datasetOf(key)
	if value, ok := c.Get(key); ok {
		metrics.ReferenceFetch(dataset, "cache")
		return value, nil
	}

	value, err := load()
	if err != nil {
		metrics.ReferenceFetch(dataset, "error")
		return nil, err
	}

	c.Set(key, value, ttl)
	metrics.ReferenceFetch(dataset, "upstream")
	return value, nil
}

// LoadThrough carga sin leer ni escribir el cache
func (c *ReferenceCache) LoadThrough(key string, load func() (interface{}, error)) (interface{}, error) {
	value, err := load()
	if err != nil {
		metrics.ReferenceFetch(datasetOf(key), "error")
		return nil, err
	}
	metrics.ReferenceFetch(datasetOf(key), "upstream")
	return value, nil
}

// InvalidateTenant descarta todas las entradas de una empresa
func (c *ReferenceCache) InvalidateTenant(tenantID int64) int {
	suffix := fmt.Sprintf(":%d", tenantID)

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key := range c.entries {
		if strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
			count++
		}
	}
	if count > 0 {
		log.Printf("🔄 Reference cache invalidated for empresa %d (%d entries)", tenantID, count)
	}
	return count
}

// Len cantidad de entradas, vigentes o no
func (c *ReferenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func datasetOf(key string) string {
	if i := strings.LastIndex(key, ":"); i > 0 {
		return key[:i]
	}
	return key
}
