// Package main provides the todoapp CLI.
package main

import "github.com/mesh-intelligence/todoapp/internal/cli"

func main() {
	cli.Execute()
}
