package main

import "github.com/taskflowhq/projectd/internal/cli/cmd"

func main() {
	cmd.Execute()
}
