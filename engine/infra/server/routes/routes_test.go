package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes(t *testing.T) {
	t.Run("Should return versioned API base path", func(t *testing.T) {
		assert.Equal(t, "/api/v0", Base())
		assert.Equal(t, "/api/v0/projects", Projects())
		assert.Equal(t, "/api/v0/health", HealthVersioned())
	})
	t.Run("Should build project resource paths", func(t *testing.T) {
		assert.Equal(t, "/api/v0/projects/demo/tasks/000001", Task("demo", "000001"))
		assert.Equal(t, "/api/v0/projects/demo/export", Export("demo"))
	})
}
