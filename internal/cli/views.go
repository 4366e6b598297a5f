package cli

import (
	"fmt"
	"strings"
)

// nodeView is the output form of a single node.
type nodeView struct {
	ID      string `json:"id,omitempty"`
	Path    string `json:"path"`
	Heading string `json:"heading,omitempty"`
	Title   string `json:"title,omitempty"`
	Alias   bool   `json:"alias,omitempty"`
	Target  string `json:"target,omitempty"`
}

func (v nodeView) String() string {
	if v.Alias {
		return fmt.Sprintf("%s -> %s", v.Path, v.Target)
	}
	return v.Path
}

// listView is the output of ls and order.
type listView struct {
	Path     string     `json:"path"`
	Children []nodeView `json:"children"`
}

func (v listView) String() string {
	if len(v.Children) == 0 {
		return "(no children)"
	}
	lines := make([]string, len(v.Children))
	for i, c := range v.Children {
		lines[i] = c.Heading
		if c.Alias {
			lines[i] += " -> " + c.Target
		}
	}
	return strings.Join(lines, "\n")
}

type treeView struct {
	Path string `json:"path"`
	Tree string `json:"tree"`
}

func (v treeView) String() string {
	return strings.TrimSuffix(v.Tree, "\n")
}

type tagView struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

func (v tagView) String() string {
	if len(v.Tags) == 0 {
		return v.Path + ": (no tags)"
	}
	return v.Path + ": #" + strings.Join(v.Tags, " #")
}

type eraseView struct {
	Path   string `json:"path"`
	Erased int    `json:"erased"`
}

func (v eraseView) String() string {
	return fmt.Sprintf("erased %d node(s) at %s", v.Erased, v.Path)
}

type initView struct {
	Database string `json:"database"`
	Created  bool   `json:"created"`
}

func (v initView) String() string {
	if v.Created {
		return "initialized " + v.Database
	}
	return v.Database + " is already initialized"
}
