package main

import "github.com/adrianvogl/investspec/cmd"

func main() {
	cmd.Execute()
}
