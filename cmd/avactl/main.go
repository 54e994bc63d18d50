package main

import "ava/internal/cli"

func main() {
	cli.Execute()
}
