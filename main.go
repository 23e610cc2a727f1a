package main

import (
	"os"

	"github.com/productbazar/bazaaradmin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
