package main

import (
	"github.com/askitty/askitty/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
