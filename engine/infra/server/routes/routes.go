package routes

const apiVersion = "v0"

// Version returns the API version used in routing (e.g., "v0").
func Version() string {
	return apiVersion
}

// Base returns the versioned API base path (e.g., "/api/v0").
func Base() string {
	return "/api/" + Version()
}

// Projects returns the projects base path (e.g., "/api/v0/projects").
func Projects() string {
	return Base() + "/projects"
}

// Task returns the path of one saved task.
func Task(project, taskID string) string {
	return Projects() + "/" + project + "/tasks/" + taskID
}

// Export returns the export path of a project.
func Export(project string) string {
	return Projects() + "/" + project + "/export"
}

// PostProject is the form target of the project creation page.
func PostProject() string {
	return "/postProject"
}

// Health returns the unversioned health path.
func Health() string {
	return "/health"
}

// HealthVersioned returns the versioned health path (e.g., "/api/v0/health").
func HealthVersioned() string {
	return Base() + "/health"
}
