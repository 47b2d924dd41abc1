package projectrouter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/router"
	"github.com/labelforge/labelforge/engine/project"
	projectuc "github.com/labelforge/labelforge/engine/project/uc"
	"github.com/labelforge/labelforge/engine/resources/exporter"
	"github.com/labelforge/labelforge/engine/resources/importer"
)

// respondProjectError maps pipeline errors to problem responses. Client
// errors keep their message since the creation page shows it verbatim.
func respondProjectError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		router.RespondProblemWithCode(c, http.StatusRequestEntityTooLarge, router.ErrPayloadTooLargeCode,
			"request body too large")
	case errors.Is(err, project.ErrInvalidForm),
		errors.Is(err, importer.ErrNoItemFile),
		errors.Is(err, importer.ErrImproperFormat),
		errors.Is(err, exporter.ErrUnsupportedFormat),
		errors.Is(err, projectuc.ErrInvalidInput),
		errors.Is(err, projectuc.ErrProjectMissing),
		errors.Is(err, projectuc.ErrTaskMissing):
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrBadRequestCode, err.Error())
	case errors.Is(err, project.ErrProjectExists):
		router.RespondProblemWithCode(c, http.StatusConflict, router.ErrConflictCode, err.Error())
	case errors.Is(err, importer.ErrUnknownCategory),
		errors.Is(err, importer.ErrUnknownAttribute),
		errors.Is(err, importer.ErrUnknownAttributeValue),
		errors.Is(err, importer.ErrAttributeType),
		errors.Is(err, importer.ErrDuplicateLabelID):
		router.RespondProblemWithCode(c, http.StatusUnprocessableEntity, router.ErrUnprocessableCode, err.Error())
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, projectuc.ErrTaskNotFound):
		router.RespondProblemWithCode(c, http.StatusNotFound, router.ErrNotFoundCode, err.Error())
	default:
		router.RespondWithServerError(c, router.ErrInternalCode, "project request failed", err)
	}
}
