// stripimports removes import lines from generated source text.
package main

import (
	"os"

	"github.com/hupe1980/stripimports/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
