package core

import "net/http"

// Problem is the error body returned by the HTTP surface, an RFC 7807
// document extended with a machine readable Code.
type Problem struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Code     string
	Instance string
	// Extras are merged into the body. Keys that collide with the standard
	// members are dropped.
	Extras map[string]any
}

// NewProblem builds a problem for status with the canonical title.
func NewProblem(status int, code, detail string) *Problem {
	return &Problem{Status: status, Code: code, Detail: detail}
}

// WithInstance records the request path the problem refers to.
func (p *Problem) WithInstance(path string) *Problem {
	p.Instance = path
	return p
}

// NormalizeProblem fills the status, title and type defaults.
func NormalizeProblem(problem *Problem) *Problem {
	if problem == nil {
		problem = &Problem{}
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	if problem.Title == "" {
		problem.Title = http.StatusText(problem.Status)
	}
	if problem.Type == "" {
		problem.Type = "about:blank"
	}
	return problem
}

// BuildProblemBody assembles the serialized representation of the problem.
func BuildProblemBody(problem *Problem) map[string]any {
	body := map[string]any{
		"status": problem.Status,
		"error":  problem.Title,
	}
	optional := map[string]string{
		"details":  problem.Detail,
		"code":     problem.Code,
		"type":     problem.Type,
		"instance": problem.Instance,
	}
	for key, value := range optional {
		if value != "" {
			body[key] = value
		}
	}
	extras := make(map[string]any, len(problem.Extras))
	for key, value := range problem.Extras {
		if _, reserved := body[key]; !reserved && !isReservedProblemKey(key) {
			extras[key] = value
		}
	}
	if len(extras) == 0 {
		return body
	}
	return CopyMaps(body, extras)
}

func isReservedProblemKey(key string) bool {
	switch key {
	case "status", "error", "details", "code", "type", "instance":
		return true
	default:
		return false
	}
}
