package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/descargabot/descargabot/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:     "descargabot",
		Short:   "Telegram download bot front end with a liveness endpoint",
		Version: version.GetInfo(),
	}
	root.AddCommand(newServeCommand())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the update dispatcher and the liveness server",
		Run: func(_ *cobra.Command, _ []string) {
			runServe()
		},
	}
}
