package router

// ProblemDocument models an RFC 7807 error envelope for API responses.
type ProblemDocument struct {
	Type   string `json:"type,omitempty"    example:"about:blank"`
	Error  string `json:"error"             example:"Conflict"`
	Status int    `json:"status"            example:"409"`
	Detail string `json:"details,omitempty" example:"Project name already exists."`
	Code   string `json:"code,omitempty"    example:"CONFLICT"`

	// Instance is the request path that produced the problem.
	Instance string `json:"instance,omitempty" example:"/postProject"`
}
