// Command graph-node-schema validates subgraph schemas and reports the
// structures the indexing node derives from them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "graph-node-schema",
		Usage: "Validate and inspect subgraph schemas",
		Commands: []*cli.Command{
			checkCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
