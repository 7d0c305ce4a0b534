package main

import "microwave/cmd/microwavectl/cmd"

func main() {
	cmd.Execute()
}
