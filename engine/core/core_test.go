package core

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	Names []string
	Sub   map[string][]int
}

func TestDeepCopy(t *testing.T) {
	t.Run("Should not share slices or maps with the source", func(t *testing.T) {
		src := nested{Names: []string{"a"}, Sub: map[string][]int{"x": {1}}}
		cp, err := DeepCopy(src)
		require.NoError(t, err)
		cp.Names[0] = "b"
		cp.Sub["x"][0] = 2
		assert.Equal(t, "a", src.Names[0])
		assert.Equal(t, 1, src.Sub["x"][0])
	})
}

func TestIndexToString(t *testing.T) {
	t.Run("Should zero pad to six digits", func(t *testing.T) {
		assert.Equal(t, "000000", IndexToString(0))
		assert.Equal(t, "000042", IndexToString(42))
		assert.Equal(t, "1234567", IndexToString(1234567))
	})
}

func TestBuildProblemBody(t *testing.T) {
	t.Run("Should fill defaults and keep extras", func(t *testing.T) {
		p := NormalizeProblem(NewProblem(http.StatusConflict, "CONFLICT", "taken"))
		p.Extras = map[string]any{"project": "demo", "status": 1, "code": "OTHER"}
		body := BuildProblemBody(p)
		assert.Equal(t, http.StatusConflict, body["status"])
		assert.Equal(t, "Conflict", body["error"])
		assert.Equal(t, "taken", body["details"])
		assert.Equal(t, "CONFLICT", body["code"])
		assert.Equal(t, "demo", body["project"])
		assert.Equal(t, "about:blank", body["type"])
		assert.NotContains(t, body, "instance")
	})
	t.Run("Should include the instance path", func(t *testing.T) {
		p := NormalizeProblem(NewProblem(http.StatusNotFound, "NOT_FOUND", "").WithInstance("/api/v0/projects/x"))
		body := BuildProblemBody(p)
		assert.Equal(t, "/api/v0/projects/x", body["instance"])
		assert.NotContains(t, body, "details")
	})
	t.Run("Should default to an internal error", func(t *testing.T) {
		body := BuildProblemBody(NormalizeProblem(nil))
		assert.Equal(t, http.StatusInternalServerError, body["status"])
		assert.Equal(t, "Internal Server Error", body["error"])
	})
}
