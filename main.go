package main

import "navpolicy/internal/cli"

func main() {
	cli.Execute()
}
