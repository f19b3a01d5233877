package main

import "github.com/ewilliams-labs/cognia/internal/cli"

func main() {
	cli.Execute()
}
