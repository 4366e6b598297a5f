package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/kmap/internal/ir"
	"github.com/roach88/kmap/internal/view"
)

// NewTagCommand creates the tag command.
func NewTagCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <path> [tag]...",
		Short: "Tag a node, or list its tags",
		Long: `Tag the node at path with each given tag, creating /meta.tag.<tag> as
needed, then print the node's tags. With no tags, only print them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runTag(opts *RootOptions, raw string, tags []string, cmd *cobra.Command) error {
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
	for _, tag := range tags {
		if _, err := view.Create(s.createCtx(), view.From(view.Node(id), view.Tag(view.Heading(tag)))); err != nil {
			return graphError(fmt.Sprintf("tag %s #%s", raw, tag), err)
		}
	}
	if len(tags) > 0 {
		if err := s.save(ctx); err != nil {
			return err
		}
	}

	ids, err := view.ToVector(s.fetchCtx(), view.From(view.Node(id), view.Tag()))
	if err != nil {
		return graphError("fetch tags", err)
	}
	v := tagView{Path: raw, Tags: make([]string, 0, len(ids))}
	for _, t := range ids {
		h, err := s.nw.FetchHeading(t)
		if err != nil {
			return graphError("fetch tags", err)
		}
		v.Tags = append(v.Tags, h)
	}
	slices.Sort(v.Tags)
	return opts.formatter(cmd).Success(v)
}

// NewOrderCommand creates the order command.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "order <parent-path> <heading>...",
		Short:   "Reorder the children of a node",
		Long:    `Reorder the children of the node at parent-path. Every child heading must be listed exactly once.`,
		Example: `  kmap order /notes done todo later`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runOrder(opts *RootOptions, raw string, headings []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	parent, err := s.node(raw)
	if err != nil {
		return err
	}
	ids := make([]ir.NodeID, 0, len(headings))
	for _, h := range headings {
		c, ok := s.nw.FetchChild(parent, h)
		if !ok {
			return graphError("reorder", ir.NewNotFound("no child %q under %s", h, raw))
		}
		ids = append(ids, c)
	}
	if err := s.nw.ReorderChildren(parent, ids); err != nil {
		return graphError(fmt.Sprintf("reorder %s", raw), err)
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	v, err := s.list(cmd, parent)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Success(v)
}
