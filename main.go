package main

import (
	"github/chapool/go-near-tools/cmd"
)

func main() {
	cmd.Execute()
}
