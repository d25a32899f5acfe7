package main

import "github.com/talgya/market-sim/internal/cli"

func main() {
	cli.Execute()
}
