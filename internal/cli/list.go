package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/kmap/internal/harness"
	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// NewLsCommand creates the ls command.
func NewLsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List the children of a node in order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(rootOpts, pathArg(args), cmd)
		},
	}
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "/"
	}
	return args[0]
}

func runLs(opts *RootOptions, raw string, cmd *cobra.Command) error {
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
	v, err := s.list(cmd, id)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(v)
}

// list returns the ordered children of id, evaluated through the cache.
func (s *session) list(cmd *cobra.Command, id ir.NodeID) (listView, error) {
	p, err := view.HeadingPath(s.nw, s.nw.Resolve(id))
	if err != nil {
		return listView{}, graphError("describe node", err)
	}
	kids, err := s.cache.Vector(cmd.Context(), s.nw, view.From(view.Node(id), view.Child(), view.Order()))
	if err != nil {
		return listView{}, graphError("list children", err)
	}
	v := listView{Path: p, Children: make([]nodeView, 0, len(kids))}
	for _, k := range kids {
		c, err := s.describe(k)
		if err != nil {
			return listView{}, err
		}
		v.Children = append(v.Children, c)
	}
	return v, nil
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the subtree under a node",
		Long: `Print the subtree under a node as an indented heading tree. Aliases
print as "heading -> /source.path"; tags follow a heading as "#tag".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(rootOpts, pathArg(args), cmd)
		},
	}
}

func runTree(opts *RootOptions, raw string, cmd *cobra.Command) error {
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
	tree, err := harness.DumpFrom(s.nw, id)
	if err != nil {
		return graphError("render tree", err)
	}
	p, _ := view.HeadingPath(s.nw, s.nw.Resolve(id))
	return opts.formatter(cmd).Success(treeView{Path: p, Tree: tree})
}
