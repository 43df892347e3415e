// Package detect decides whether a C# file is written against NUnit.
//
// A cheap text probe catches the common spellings; files that slip past it
// are parsed with tree-sitter and their attribute names are inspected, which
// also finds lists like [Test, Category("slow")] and [TestCase(1)].
package detect

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// textMarkers are matched verbatim.
var textMarkers = [][]byte{
	[]byte("NUnit.Framework"),
	[]byte("[Test]"),
	[]byte("[TestFixture]"),
	[]byte("[TestCase]"),
}

// attrMarkers are attribute names that only NUnit test files use.
var attrMarkers = map[string]struct{}{
	"Test":         {},
	"TestCase":     {},
	"TestFixture":  {},
	"SetUp":        {},
	"TearDown":     {},
	"OneTimeSetUp": {},
}

// OneTimeSetUp is the attribute that claims the shared fixture name.
const OneTimeSetUp = "OneTimeSetUp"

// Result describes one file.
type Result struct {
	// Candidate is true when the file should be converted.
	Candidate bool
	// ByText is true when the text probe alone decided.
	ByText bool
	// Attributes lists the NUnit attribute names found by the syntax scan,
	// in source order and without duplicates.
	Attributes   []string
	OneTimeSetUp bool
}

// ContainsMarkers runs the text probe.
func ContainsMarkers(content []byte) bool {
	for _, m := range textMarkers {
		if bytes.Contains(content, m) {
			return true
		}
	}
	return false
}

// Scan classifies content. The syntax scan always runs so OneTimeSetUp is
// found in every spelling.
func Scan(ctx context.Context, content []byte) (Result, error) {
	res := Result{ByText: ContainsMarkers(content)}
	names, err := Attributes(ctx, content)
	if err != nil {
		return Result{}, err
	}
	for _, n := range names {
		if _, ok := attrMarkers[n]; ok {
			res.Attributes = append(res.Attributes, n)
		}
		if n == OneTimeSetUp {
			res.OneTimeSetUp = true
		}
	}
	res.Candidate = res.ByText || len(res.Attributes) > 0
	return res, nil
}

// Attributes returns the simple names of every attribute in the file:
// namespace qualifiers and the Attribute suffix are stripped.
func Attributes(ctx context.Context, content []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	seen := make(map[string]struct{})
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "attribute" {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name := simpleName(nameNode.Content(content))
				if _, dup := seen[name]; !dup && name != "" {
					seen[name] = struct{}{}
					names = append(names, name)
				}
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(tree.RootNode())
	return names, nil
}

// simpleName: "NUnit.Framework.TestAttribute" -> "Test", "Generic<T>" -> "Generic".
func simpleName(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexAny(s, ".:"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	if len(s) > len("Attribute") && strings.HasSuffix(s, "Attribute") {
		s = strings.TrimSuffix(s, "Attribute")
	}
	return s
}
