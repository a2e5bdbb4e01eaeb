package main

import (
	"fmt"
	"os"

	"github.com/zware/FawltyDeps/internal/app"
	"github.com/zware/FawltyDeps/internal/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fawltydeps: %v\n", err)
		os.Exit(2)
	}

	os.Exit(app.New(cfg).Run())
}
