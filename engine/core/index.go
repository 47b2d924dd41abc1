package core

import "fmt"

// IndexToString formats a task index as the six digit identifier used in
// storage keys.
func IndexToString(index int) string {
	return fmt.Sprintf("%06d", index)
}
