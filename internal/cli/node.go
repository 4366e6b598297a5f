package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title string
	Body  string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Create the node at path and any missing parents",
		Example: `  kmap add /notes.todo
  kmap add /notes.todo --title "To do" --body "ship it"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "display title")
	cmd.Flags().StringVar(&opts.Body, "body", "", "body text")

	return cmd
}

func runAdd(opts *AddOptions, raw string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.ensure(raw)
	if err != nil {
		return err
	}
	if opts.Title != "" {
		if err := s.nw.UpdateTitle(id, opts.Title); err != nil {
			return graphError("set title", err)
		}
	}
	if opts.Body != "" {
		if err := s.nw.UpdateBody(id, opts.Body); err != nil {
			return graphError("set body", err)
		}
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	v, err := s.describe(id)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(v)
}

// NewRmCommand creates the rm command.
func NewRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Erase every node path matches, with its subtree and aliases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(rootOpts, args[0], cmd)
		},
	}
}

func runRm(opts *RootOptions, raw string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.tether(raw)
	if err != nil {
		return err
	}
	n, err := view.Erase(s.createCtx(), t)
	if err != nil {
		return graphError(fmt.Sprintf("erase %s", raw), err)
	}
	if n == 0 {
		return graphError(fmt.Sprintf("erase %s", raw), ir.NewNotFound("%s matched nothing", raw))
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	return opts.formatter(cmd).Success(eraseView{Path: raw, Erased: n})
}

// NewMvCommand creates the mv command.
func NewMvCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <path> <parent-path>",
		Short: "Move a node under a new parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMv(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runMv(opts *RootOptions, raw, parentRaw string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.node(raw)
	if err != nil {
		return err
	}
	parent, err := s.node(parentRaw)
	if err != nil {
		return err
	}
	if err := s.nw.MoveNode(id, parent); err != nil {
		return graphError(fmt.Sprintf("move %s", raw), err)
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	v, err := s.describe(id)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(v)
}

// NewAliasCommand creates the alias command.
func NewAliasCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alias <src-path> <dst-path>",
		Short: "Expose the node at src-path under dst-path",
		Long: `Create an alias of the node at src-path under the node at dst-path,
creating dst-path if missing. The alias mirrors the source's children,
including children added later.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlias(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runAlias(opts *RootOptions, srcRaw, dstRaw string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	src, err := s.node(srcRaw)
	if err != nil {
		return err
	}
	dst, err := s.ensure(dstRaw)
	if err != nil {
		return err
	}
	id, err := s.nw.CreateAlias(src, dst)
	if err != nil {
		return graphError(fmt.Sprintf("alias %s under %s", srcRaw, dstRaw), err)
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	v, err := s.describe(id)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(v)
}
