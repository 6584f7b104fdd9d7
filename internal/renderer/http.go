package renderer

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HTTPStatusAdapter serves the latest post-tick snapshot over a small Gin
// router, CORS-enabled for a browser dev console. It never drives the
// simulation — it only observes whatever World pushes to it via RenderAll,
// the same read-only status-surface role the teacher's server/simple
// handlers play over their own consciousness state.
type HTTPStatusAdapter struct {
	mu       sync.RWMutex
	entities []EntityView
	fields   []FieldView
	router   *gin.Engine
}

// NewHTTPStatusAdapter builds the adapter and wires its routes. Call Run to
// start serving; the adapter is also a valid Adapter/BatchAdapter for a
// World to drive directly without ever calling Run, for tests that just
// want to assert on the served JSON shape.
func NewHTTPStatusAdapter() *HTTPStatusAdapter {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	a := &HTTPStatusAdapter{router: router}
	router.GET("/status", a.handleStatus)
	router.GET("/entities", a.handleEntities)
	router.GET("/fields", a.handleFields)
	return a
}

// Run starts the HTTP server on addr, blocking until it exits.
func (a *HTTPStatusAdapter) Run(addr string) error {
	return a.router.Run(addr)
}

func (a *HTTPStatusAdapter) handleStatus(c *gin.Context) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"entity_count": len(a.entities),
		"field_count":  len(a.fields),
	})
}

func (a *HTTPStatusAdapter) handleEntities(c *gin.Context) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"entities": a.entities})
}

func (a *HTTPStatusAdapter) handleFields(c *gin.Context) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"fields": a.fields})
}

func (a *HTTPStatusAdapter) Init() error { return nil }

func (a *HTTPStatusAdapter) Spawn(e EntityView) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entities = append(a.entities, e)
}

func (a *HTTPStatusAdapter) Update(e EntityView, dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.entities {
		if a.entities[i].ID == e.ID {
			a.entities[i] = e
			return
		}
	}
	a.entities = append(a.entities, e)
}

func (a *HTTPStatusAdapter) Destroy(entityID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.entities {
		if a.entities[i].ID == entityID {
			a.entities = append(a.entities[:i], a.entities[i+1:]...)
			return
		}
	}
}

func (a *HTTPStatusAdapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entities = nil
	a.fields = nil
}

func (a *HTTPStatusAdapter) Dispose() {
	a.Clear()
}

// RenderAll replaces the whole served snapshot at once, the path World
// prefers when an adapter implements BatchAdapter (spec.md §4.16).
func (a *HTTPStatusAdapter) RenderAll(entities []EntityView, fields []FieldView) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entities = entities
	a.fields = fields
}
