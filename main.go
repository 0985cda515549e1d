package main

import "github.com/xvierd/habit-cli/cmd"

func main() {
	cmd.Execute()
}
