// Command taxonomy loads occupation/skill taxonomies from CSV files into
// PostgreSQL, recomputes degree centrality and exports models as ZIP archives.
//
// Commands:
//
//	migrate     apply the embedded schema migrations
//	import      create a model and load a directory of CSV files into it
//	centrality  recompute degree centrality of a model
//	export      write a model to one archive
//
// Exit codes: 0 = success, 1 = error (including an import that finished
// with errors).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
