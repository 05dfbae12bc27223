package main

import "github.com/agentic-research/canopy/cmd"

func main() {
	cmd.Execute()
}
