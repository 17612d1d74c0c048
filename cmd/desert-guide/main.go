package main

import "go-desert-guide/cmd/desert-guide/cmd"

func main() {
	cmd.Execute()
}
