package main

import (
	"github.com/bank-vaults/scoped-storage/cmd"
)

func main() {
	cmd.Execute()
}
