// Command imgfscmd is the CLI front end over pkg/imgfs: list, create,
// read, insert, and delete operations against a single database file.
package main

import (
	"os"

	"github.com/cs212/imgfs/internal/imgfscli"
)

func main() {
	os.Exit(imgfscli.Run(os.Stdout, os.Stderr, os.Args))
}
