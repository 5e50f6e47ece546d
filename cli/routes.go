package cli

import (
	"fmt"

	actx "github.com/usherkit/usher/app/context"
	"github.com/usherkit/usher/server/api"
)

// The Routes command lists the routes exposed by the API server.
type Routes struct{}

// Run the routes command.
func (c *Routes) Run(appCtx *actx.Context) error {
	data := [][]string{}
	for _, r := range api.Routes() {
		data = append(data, []string{r.Method, r.Path, r.Desc})
	}

	err := renderTable([]string{"Method", "Path", "Description"}, data, appCtx.Stdout)
	if err != nil {
		return fmt.Errorf("failed rendering routes table: %w", err)
	}

	return nil
}
