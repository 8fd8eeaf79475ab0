package main

import (
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/joho/godotenv"

	"github.com/daybook-dev/daybook/internal/commands"
)

func main() {
	// A .env in the working directory may set DAYBOOK_DATA; absence is
	// fine.
	_ = godotenv.Load()

	rootCmd := commands.NewRootCommand()

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
