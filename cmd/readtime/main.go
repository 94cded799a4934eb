package main

import (
	"os"

	"github.com/ayoisaiah/readtime/app"
	"github.com/ayoisaiah/readtime/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Quit(err)
	}
}
