package main

import (
	"github.com/oneconcern/gitzero/cmd/gitzero/cmd"
)

func main() {
	cmd.Execute()
}
