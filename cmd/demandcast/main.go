package main

import "github.com/aouyang1/go-holtwinters/cmd/demandcast/cmd"

func main() {
	cmd.Execute()
}
