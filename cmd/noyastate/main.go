// Command noyastate applies editor actions to Sketch documents.
//
// Usage:
//
//	noyastate apply design.json script.yaml -o out.json
//	noyastate inspect design.json
//	noyastate watch design.json script.yaml -o out.json
//	noyastate actions
//
// A script is a YAML or JSON list of action tuples:
//
//	- [addPage, Cover]
//	- [selectLayer, [header, footer]]
//	- [setLayerX, [], 10, adjust]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
