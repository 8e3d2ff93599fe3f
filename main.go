package main

import "github.com/brogergvhs/apodd/cmd"

func main() {
	cmd.Execute()
}
