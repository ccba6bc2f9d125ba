// Command imgfsserver is the concurrent HTTP front end over pkg/imgfs: it
// opens a database file, wraps it in an imgfsd.Service under a single
// mutex, and serves the route table from SPEC_FULL.md §4.F until SIGINT or
// SIGTERM arrives. The signal channel is created here and handed to
// Server.ListenAndServe, whose shutdown goroutine is its only reader;
// worker goroutines never observe the signal (see cmd/tk/main.go for the
// pattern this follows).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cs212/imgfs/pkg/imgfs"
	"github.com/cs212/imgfs/pkg/imgfsd"
)

const defaultPort = 8000

func main() {
	dbPath := flag.String("db", "imgfs.bin", "Path to the database file")
	indexPath := flag.String("index", "index.html", "Path to the static index page")
	port := flag.Int("port", defaultPort, "Listening port")
	flag.Parse()

	os.Exit(run(*dbPath, *indexPath, *port))
}

func run(dbPath, indexPath string, port int) int {
	eng, err := imgfs.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer eng.Close()

	baseURL := fmt.Sprintf("http://localhost:%d", port)
	svc := imgfsd.NewService(eng, indexPath, baseURL)
	srv := imgfsd.NewServer(svc.Handler())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", port)

	fmt.Fprintf(os.Stdout, "imgfsserver listening on %s\n", addr)

	if err := srv.ListenAndServe(addr, sigCh); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	return 0
}
