package projectrouter

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/router"
	"github.com/labelforge/labelforge/engine/infra/server/routes"
	"github.com/labelforge/labelforge/engine/project"
	projectuc "github.com/labelforge/labelforge/engine/project/uc"
	"github.com/labelforge/labelforge/engine/resources/exporter"
	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/pkg/logger"
)

// Upload field names of the creation form.
const (
	FieldItemFile   = "item_file"
	FieldAttributes = "attributes"
	FieldCategories = "categories"
)

// CreatedDTO is returned after a project was stored.
type CreatedDTO struct {
	Project string   `json:"project"`
	Tasks   []string `json:"tasks"`
}

// CreateProject handles the multipart creation form.
//
// @Summary Create project
// @Description Validate the creation form, split the uploaded items into tasks and store them.
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} projectrouter.CreatedDTO "Project created"
// @Failure 400 {object} router.ProblemDocument "Invalid form or upload"
// @Failure 409 {object} router.ProblemDocument "Project name already exists"
// @Failure 422 {object} router.ProblemDocument "Labels do not match the project categories or attributes"
// @Failure 500 {object} router.ProblemDocument "Internal server error"
// @Router /postProject [post]
func CreateProject(c *gin.Context) {
	store, ok := router.GetStore(c)
	if !ok {
		return
	}
	var raw project.RawForm
	if err := c.ShouldBind(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondProjectError(c, err)
			return
		}
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrBadRequestCode, "invalid form body")
		return
	}
	files, err := uploadedFiles(c)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	out, err := projectuc.NewCreate(store).Execute(c.Request.Context(), &projectuc.CreateInput{Form: raw, Files: files})
	if err != nil {
		respondProjectError(c, err)
		return
	}
	name := out.Project.Config.ProjectName
	c.Header("Location", routes.Projects()+"/"+name)
	router.RespondCreated(c, "Success", CreatedDTO{Project: name, Tasks: out.TaskIDs})
}

func uploadedFiles(c *gin.Context) (importer.Files, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return importer.Files{}, nil
		}
		return importer.Files{}, err
	}
	return importer.Files{
		Items:      firstFile(form, FieldItemFile),
		Attributes: firstFile(form, FieldAttributes),
		Categories: firstFile(form, FieldCategories),
	}, nil
}

// firstFile returns nil, not a typed nil, when field has no upload.
func firstFile(form *multipart.Form, field string) importer.Source {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil
	}
	return importer.MultipartSource{Header: headers[0]}
}

// getTask handles GET /projects/:name/tasks/:taskId.
//
// @Summary Get task
// @Tags projects
// @Produce json
// @Param name path string true "Project name"
// @Param taskId path string true "Six digit task id" example("000000")
// @Success 200 {object} state.Task "Task retrieved"
// @Failure 404 {object} router.ProblemDocument "Task not found"
// @Router /projects/{name}/tasks/{taskId} [get]
func getTask(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	log.Debug("handling GET task request", "project", c.Param("name"), "task", c.Param("taskId"))
	store, ok := router.GetStore(c)
	if !ok {
		return
	}
	task, err := projectuc.NewGetTask(store).Execute(c.Request.Context(), &projectuc.GetTaskInput{
		Project: c.Param("name"),
		TaskID:  c.Param("taskId"),
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}
	router.RespondOK(c, "Success", task)
}

// exportProject handles GET /projects/:name/export.
//
// @Summary Export project
// @Description Export every item of the project in the exchange format.
// @Tags projects
// @Produce json
// @Produce application/yaml
// @Param name path string true "Project name"
// @Param format query string false "json or yaml" example("json")
// @Success 200 {array} state.ItemExport "Exported items"
// @Failure 400 {object} router.ProblemDocument "Unsupported format"
// @Failure 404 {object} router.ProblemDocument "Project not found"
// @Router /projects/{name}/export [get]
func exportProject(c *gin.Context) {
	store, ok := router.GetStore(c)
	if !ok {
		return
	}
	out, err := projectuc.NewExport(store).Execute(c.Request.Context(), &projectuc.ExportInput{
		Project: c.Param("name"),
		Format:  exporter.Format(c.Query("format")),
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	c.Data(http.StatusOK, contentType(out.Format), out.Data)
}

func contentType(format exporter.Format) string {
	if format == exporter.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
