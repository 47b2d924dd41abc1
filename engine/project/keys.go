package project

const (
	projectDoc = "project"
	tasksDir   = "tasks"
)

// ProjectKey is the storage key of a project document. name must have
// passed ValidProjectName; it becomes exactly one key segment.
func ProjectKey(name string) string {
	return name + "/" + projectDoc
}

// TaskKey is the storage key of one task document.
func TaskKey(name, taskID string) string {
	return TasksPrefix(name) + taskID
}

// TasksPrefix is the key prefix shared by all tasks of a project.
func TasksPrefix(name string) string {
	return name + "/" + tasksDir + "/"
}
