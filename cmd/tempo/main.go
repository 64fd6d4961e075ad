package main

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tempo/app"
	"github.com/ayoisaiah/tempo/internal/osutil"
	"github.com/ayoisaiah/tempo/repository"
	"github.com/ayoisaiah/tempo/store"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err == nil {
		os.Exit(int(osutil.ExitOK))
	}

	pterm.Error.Println(err)

	switch {
	case errors.Is(err, store.ErrAuth):
		pterm.Info.Println(
			"Check store.credentials_file and store.spreadsheet_id with `tempo edit-config`",
		)
	case errors.Is(err, repository.ErrSync):
		pterm.Info.Println(
			"Nothing was saved. Run `tempo refresh` once the store is reachable and try again",
		)
	}

	os.Exit(int(osutil.ExitError))
}
