package fuzztests

import (
	"testing"

	"xunitify/internal/diag"
	"xunitify/internal/lexer"
	"xunitify/internal/source"
	"xunitify/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("Fuzz.cs", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenSpans(lx.Tokenize(), file); err != nil {
			t.Fatalf("token invariant: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
