//	@title			Labelforge API
//	@version		1.0
//	@description	Labelforge creates annotation projects, splits their items into tasks and exports labels.

//	@BasePath	/api/v0

//	@tag.name			projects
//	@tag.description	Project creation, task retrieval and export

package main

import (
	"fmt"
	"os"

	"github.com/labelforge/labelforge/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
