package main

import "github.com/m04kA/SMC-CharterService/internal/cli"

func main() {
	cli.Execute()
}
