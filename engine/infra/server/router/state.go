package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/appstate"
	"github.com/labelforge/labelforge/engine/resources"
)

// GetAppState returns the application state or answers 500 when it is absent.
func GetAppState(c *gin.Context) (*appstate.State, bool) {
	st, err := appstate.GetState(c)
	if err != nil {
		RespondWithServerError(c, ErrInternalCode, ErrMsgAppStateNotInitialized, err)
		return nil, false
	}
	return st, true
}

// GetStore returns the project store of the application state.
func GetStore(c *gin.Context) (resources.Store, bool) {
	st, ok := GetAppState(c)
	if !ok {
		return nil, false
	}
	if st.Store == nil {
		RespondProblemWithCode(c, http.StatusServiceUnavailable, ErrServiceUnavailableCode, "storage not configured")
		return nil, false
	}
	return st.Store, true
}
