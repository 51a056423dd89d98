// clientes CLI - list, search and edit customer records of the ERP backend
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-clientes-sync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
