package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/kmap/internal/network"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty network in the database",
		Long: `Create the database if needed and store an empty network holding only
the root. Running init on an initialized database changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	v := initView{Database: opts.cfg.Database}
	has, err := st.HasNetwork(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "inspect database", err)
	}
	if !has {
		if err := st.Save(ctx, network.New(network.WithLogger(opts.Logger()))); err != nil {
			return WrapExitError(ExitCommandError, "save network", err)
		}
		v.Created = true
	}
	return opts.formatter(cmd).Success(v)
}
