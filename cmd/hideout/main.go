package main

import "github.com/andrescamacho/hideout-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
