package main

import "vxtimeline/internal/cli"

func main() {
	cli.Execute()
}
