// contentctl is the maintenance CLI: seeding fixture content and wiping
// test data outside the API's request path.
package main

import (
	"fmt"
	"os"

	"github.com/kingarthur/content-api/internal/config"
)

func main() {
	cfg := config.Load()

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
