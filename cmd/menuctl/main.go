package main

import "carte/internal/cli"

func main() {
	cli.Execute()
}
