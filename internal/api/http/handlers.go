package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/serin-reader/serin/internal/domain/extensions"
	"github.com/serin-reader/serin/internal/domain/registry"
)

// Handlers contains the introspection API handlers.
type Handlers struct {
	service *registry.Service
}

// NewHandlers creates a new handler set.
func NewHandlers(service *registry.Service) *Handlers {
	return &Handlers{service: service}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "serin extension registry",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.service.Stats(),
	})
}

// ListModules returns a snapshot of all cached app modules
func (h *Handlers) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modules": h.service.Modules(),
	})
}

// ActiveModule returns the module bound to the foreground process
func (h *Handlers) ActiveModule(c *gin.Context) {
	mod, err := h.service.ActiveModule()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, registry.ErrNoForeground) {
			status = http.StatusNotFound
		}
		var loadErr *extensions.LoadError
		if errors.As(err, &loadErr) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       mod.ID(),
		"app":      mod.AppName(),
		"pid":      mod.ProcessID(),
		"bindings": len(mod.KeyMap()),
	})
}

// Refresh evicts dead modules and rebinds the given process
func (h *Handlers) Refresh(c *gin.Context) {
	pid, err := strconv.Atoi(c.Query("pid"))
	if err != nil || pid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pid query parameter required"})
		return
	}

	mod, err := h.service.Refresh(pid)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"app": mod.AppName(),
		"pid": mod.ProcessID(),
	})
}
