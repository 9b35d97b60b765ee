package main

import "github.com/rnwolfe/lorefind/cmd"

func main() {
	cmd.Execute()
}
