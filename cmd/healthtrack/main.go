package main

import "github.com/nfrund/healthtrack/cmd/healthtrack/cmd"

func main() {
	cmd.Execute()
}
