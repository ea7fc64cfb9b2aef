package main

import (
	"dealscope/cmd"
)

func main() {
	cmd.Execute()
}
