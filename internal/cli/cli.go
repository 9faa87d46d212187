// Package cli implements posctl, the back-office command line for the order ledger
// and the sales report archive.
package cli

import (
	"io"
	"os"

	"go-restaurant-pos/internal/app"

	"github.com/spf13/cobra"
)

// Opener opens the application on first use so --help works without a store.
type Opener func() (*app.App, error)

// Options contain configuration for the CLI
type Options struct {
	Open   Opener
	Output io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	open    Opener
	app     *app.App
	out     io.Writer
	rootCmd *cobra.Command
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{open: opts.Open, out: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "posctl",
		Short:         "Restaurant POS sales reports and order ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)

	cmd.AddCommand(cli.newReportCmd())
	cmd.AddCommand(cli.newReportsCmd())
	cmd.AddCommand(cli.newOrdersCmd())

	return cmd
}

func (cli *CLI) application() (*app.App, error) {
	if cli.app != nil {
		return cli.app, nil
	}
	a, err := cli.open()
	if err != nil {
		return nil, err
	}
	cli.app = a
	return a, nil
}

func (cli *CLI) close() {
	if cli.app != nil {
		_ = cli.app.Close()
	}
}
