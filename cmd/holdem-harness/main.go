package main

import (
	"github.com/alecthomas/kong"
)

// CLI is the holdem-harness command tree: a thin host around the
// create-hand-factory/run() contract internal/hand and
// internal/scriptfile already implement (§6.5).
type CLI struct {
	Run RunCmd `cmd:"" help:"Run a scripted hand from an HCL script file and print the result"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-harness"),
		kong.Description("Deterministic scripted-hand harness for the hold'em core engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
