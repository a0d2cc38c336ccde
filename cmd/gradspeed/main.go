// Package main provides the gradspeed CLI.
package main

import "os"

const version = "v0.1.0-dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
