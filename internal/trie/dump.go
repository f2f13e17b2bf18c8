// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trie

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes one line per node reachable from the root to w, indented by
// depth. It exists for --verbose diagnostics: runPipeline calls it after
// every successful run, and its output is only seen when the run's logger
// writes to stderr.
func (t *Trie) Dump(w io.Writer) error {
	root, err := t.resolveRoot()
	if err != nil {
		return err
	}
	return t.dumpNode(w, root, 0)
}

func (t *Trie) dumpNode(w io.Writer, n Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case EmptyNode:
		fmt.Fprintf(w, "%sempty\n", indent)
		return nil

	case LeafNode:
		fmt.Fprintf(w, "%sleaf path=%s value=%dB\n", indent, v.Path, len(v.Value))
		return nil

	case ExtensionNode:
		fmt.Fprintf(w, "%sextension path=%s\n", indent, v.Path)
		child, err := t.resolveChild(v.Child)
		if err != nil {
			return err
		}
		return t.dumpNode(w, child, depth+1)

	case BranchNode:
		value := "none"
		if v.HasValue() {
			value = fmt.Sprintf("%dB", len(v.Value))
		}
		fmt.Fprintf(w, "%sbranch value=%s\n", indent, value)
		for i, ref := range v.Slots {
			if ref.IsEmpty() {
				continue
			}
			child, err := t.resolveChild(ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  [%x]\n", indent, i)
			if err := t.dumpNode(w, child, depth+2); err != nil {
				return err
			}
		}
		return nil

	default:
		fmt.Fprintf(w, "%sunknown node %T\n", indent, n)
		return nil
	}
}
