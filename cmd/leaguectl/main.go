package main

import "futsal-app/internal/cli"

func main() {
	cli.Execute()
}
