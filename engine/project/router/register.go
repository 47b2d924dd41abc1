package projectrouter

import "github.com/gin-gonic/gin"

func Register(apiBase *gin.RouterGroup) {
	projects := apiBase.Group("/projects")
	{
		projects.POST("", CreateProject)
		projects.GET("/:name/tasks/:taskId", getTask)
		projects.GET("/:name/export", exportProject)
	}
}
