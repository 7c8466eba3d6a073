package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"sync-documenter/core/storage"

	"github.com/minio/minio-go/v7"
)

// Node is one named element of a snapshot tree. Scalars decoded from the
// export live in Attrs; nested objects and arrays live in Children.
type Node struct {
	Name     string
	Value    string
	Attrs    map[string]string
	Children []*Node
}

// Tree is an immutable snapshot of one configuration export.
type Tree struct {
	root *Node
}

// Load reads a snapshot export from a local file.
func Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	tree, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return tree, nil
}

// LoadObject reads a snapshot export from object storage.
func LoadObject(ctx context.Context, client storage.Client, bucket, object string) (*Tree, error) {
	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", object, err)
	}
	defer obj.Close()

	tree, err := Parse(obj)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", object, err)
	}
	return tree, nil
}

// Parse decodes a JSON snapshot export into a tree.
func Parse(r io.Reader) (*Tree, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	root := &Node{Name: "", Attrs: map[string]string{}}
	if err := fillNode(root, doc); err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

// Root returns the document root node.
func (t *Tree) Root() *Node {
	return t.root
}

// fillNode populates a node from a decoded JSON object. Member names are
// visited in sorted order so the tree shape is load-order independent.
func fillNode(n *Node, obj map[string]any) error {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch v := obj[name].(type) {
		case map[string]any:
			child := &Node{Name: name, Attrs: map[string]string{}}
			if err := fillNode(child, v); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case []any:
			for _, elem := range v {
				child := &Node{Name: name, Attrs: map[string]string{}}
				switch e := elem.(type) {
				case map[string]any:
					if err := fillNode(child, e); err != nil {
						return err
					}
				case []any:
					return fmt.Errorf("node %q: nested arrays are not a valid export shape", name)
				default:
					child.Value = scalarString(e)
				}
				n.Children = append(n.Children, child)
			}
		default:
			n.Attrs[name] = scalarString(v)
		}
	}
	return nil
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprintf("%v", s)
	}
}
