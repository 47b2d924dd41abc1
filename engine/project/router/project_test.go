package projectrouter

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/appstate"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const itemsYAML = `
- url: https://example.com/0.jpg
  videoName: a
- url: https://example.com/1.jpg
  videoName: a
- url: https://example.com/2.jpg
  videoName: b
  labels:
    - id: 3
      category: [car]
      attributes: {Occluded: true}
      box2d: {x1: 1, y1: 2, x2: 3, y2: 4}
`

func newTestEngine(t *testing.T) (*gin.Engine, *resources.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := resources.NewMemoryStore()
	state, err := appstate.NewState(store, nil)
	require.NoError(t, err)
	r := gin.New()
	r.Use(appstate.StateMiddleware(state))
	r.POST("/postProject", CreateProject)
	Register(r.Group("/api/v0"))
	return r, store
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".yml")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/postProject", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func formFields(itemType string) map[string]string {
	return map[string]string{
		"project_name": "street scenes",
		"item_type":    itemType,
		"label_type":   "box2d",
		"page_title":   "Streets",
		"task_size":    "2",
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateProject(t *testing.T) {
	t.Run("Should create the project and its tasks", func(t *testing.T) {
		r, store := newTestEngine(t)
		rec := serve(r, multipartRequest(t, formFields("image"), map[string]string{FieldItemFile: itemsYAML}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := rec.Body.String()
		assert.Equal(t, "street_scenes", gjson.Get(body, "data.project").String())
		assert.Equal(t, `["000000","000001"]`, gjson.Get(body, "data.tasks").Raw)
		assert.Equal(t, "/api/v0/projects/street_scenes", rec.Header().Get("Location"))
		assert.Equal(t, 3, store.Len())
	})

	t.Run("Should answer 409 for a taken name", func(t *testing.T) {
		r, _ := newTestEngine(t)
		files := map[string]string{FieldItemFile: itemsYAML}
		require.Equal(t, http.StatusCreated, serve(r, multipartRequest(t, formFields("image"), files)).Code)
		rec := serve(r, multipartRequest(t, formFields("image"), files))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Project name already exists.", gjson.Get(rec.Body.String(), "details").String())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})

	t.Run("Should answer 400 with the form message", func(t *testing.T) {
		r, _ := newTestEngine(t)
		fields := formFields("image")
		delete(fields, "label_type")
		rec := serve(r, multipartRequest(t, fields, map[string]string{FieldItemFile: itemsYAML}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please choose a label type", gjson.Get(rec.Body.String(), "details").String())
	})

	t.Run("Should answer 400 without an item file", func(t *testing.T) {
		r, store := newTestEngine(t)
		rec := serve(r, multipartRequest(t, formFields("image"), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No item file.", gjson.Get(rec.Body.String(), "details").String())
		assert.Zero(t, store.Len())
	})

	t.Run("Should answer 400 for malformed uploads", func(t *testing.T) {
		r, _ := newTestEngine(t)
		rec := serve(r, multipartRequest(t, formFields("image"), map[string]string{
			FieldItemFile:   itemsYAML,
			FieldCategories: "- name: [unclosed",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Improper formatting for categories file", gjson.Get(rec.Body.String(), "details").String())
	})

	t.Run("Should answer 422 for unknown categories", func(t *testing.T) {
		r, _ := newTestEngine(t)
		rec := serve(r, multipartRequest(t, formFields("image"), map[string]string{
			FieldItemFile: "- url: x\n  labels:\n    - category: [dragon]\n",
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestReadRoutes(t *testing.T) {
	r, _ := newTestEngine(t)
	rec := serve(r, multipartRequest(t, formFields("video"), map[string]string{FieldItemFile: itemsYAML}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("Should return a saved task", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/street_scenes/tasks/000001", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "000001", gjson.Get(body, "data.config.taskId").String())
		assert.Equal(t, "label", gjson.Get(body, "data.config.handlerUrl").String())
		assert.Equal(t, int64(1), gjson.Get(body, "data.items.#").Int())
		assert.Equal(t, "box2d", gjson.Get(body, "data.items.0.labels.3.type").String())
	})

	t.Run("Should answer 404 for unknown tasks", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/street_scenes/tasks/000042", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Should export items with the exchange field names", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/street_scenes/export", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="street_scenes_export.json"`, rec.Header().Get("Content-Disposition"))
		body := rec.Body.String()
		assert.Equal(t, int64(3), gjson.Get(body, "#").Int())
		label := gjson.Get(body, "2.labels.0")
		assert.Equal(t, int64(3), label.Get("id").Int())
		assert.Equal(t, "car", label.Get("category.0").String())
		assert.Equal(t, int64(1), label.Get("category.#").Int())
		assert.True(t, label.Get("attributes.Occluded").Bool())
		assert.Equal(t, float64(4), label.Get("box2d.y2").Float())
		assert.Equal(t, gjson.Null, label.Get("poly2d").Type)
		assert.True(t, label.Get("manualShape").Bool())
	})

	t.Run("Should export YAML on request", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/street_scenes/export?format=yaml", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "videoName: b")
	})

	t.Run("Should answer 400 for unsupported formats", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/street_scenes/export?format=csv", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should answer 404 for unknown projects", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v0/projects/ghost/export", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
