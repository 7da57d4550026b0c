package main

import "github.com/opencampus/doctrack/cmd"

func main() {
	cmd.Execute()
}
