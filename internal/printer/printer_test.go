package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xunitify/internal/ast"
	"xunitify/internal/parser"
	"xunitify/internal/source"
)

func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	f, err := parser.Parse(fs.Get(fs.AddVirtual("print.cs", []byte(src))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

func TestPrintNormalizesLayout(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "braces",
			src:  "class A {\n  void M() {\n    if(x){ y(); }\n  }\n}\n",
			want: "class A\n{\n    void M()\n    {\n        if (x)\n        {\n            y();\n        }\n    }\n}\n",
		},
		{
			name: "spacing",
			src:  "class A\n{\n    int   x=1 ;\n    void M ( int a,int b )\n    {\n        x+=a*b ;\n    }\n}\n",
			want: "class A\n{\n    int x = 1;\n\n    void M(int a, int b)\n    {\n        x += a * b;\n    }\n}\n",
		},
		{
			name: "parameter lists",
			src:  "class P (int seed)\n{\n    public P (int x) : base (x)\n    {\n        int Sq (int y)\n        {\n            return y * y;\n        }\n    }\n}\n",
			want: "class P(int seed)\n{\n    public P(int x) : base(x)\n    {\n        int Sq(int y)\n        {\n            return y * y;\n        }\n    }\n}\n",
		},
		{
			name: "embedded statement",
			src:  "class A\n{\n    void M()\n    {\n        while (ok) Step();\n    }\n}\n",
			want: "class A\n{\n    void M()\n    {\n        while (ok)\n            Step();\n    }\n}\n",
		},
		{
			name: "blank lines collapse",
			src:  "using System;\n\n\n\nclass A\n{\n}\n",
			want: "using System;\n\nclass A\n{\n}\n",
		},
		{
			name: "empty file",
			src:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Print(parseSource(t, tt.src), Options{}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Print mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

const stableSample = `using System;
using System.Collections.Generic;

namespace Demo.Tests
{
    public enum Color
    {
        Red,
        Green = 2,
    }

    [Serializable]
    public sealed class Box<T> : Base<T>, IComparable<Box<T>> where T : class
    {
        private readonly List<T> items = new List<T>();

        public int Count { get; private set; }

        public T this[int index] => items[index];

        public Box(int capacity) : base(capacity)
        {
            Count = 0;
        }

        public void Each(Action<T> f)
        {
            foreach (var item in items)
            {
                f(item);
            }
            for (var i = 0; i < Count; i++)
                Console.WriteLine(i);
            try
            {
                Run(() =>
                {
                    Count++;
                });
            }
            catch (InvalidOperationException e) when (e.Message != null)
            {
                throw;
            }
            finally
            {
                Count = -1;
            }
        }
    }
}
`

func TestPrintIsStableOnNormalizedInput(t *testing.T) {
	got := string(Print(parseSource(t, stableSample), Options{}))
	if diff := cmp.Diff(stableSample, got); diff != "" {
		t.Errorf("Print mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintKeepsComments(t *testing.T) {
	src := `class A
{
    // leading comment
    int x; // trailing

    /// <summary>Doc.</summary>
    void M()
    {
        /* block */
        x = 1;
    }
}
`
	got := string(Print(parseSource(t, src), Options{}))
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("Print mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintTabs(t *testing.T) {
	src := "class A\n{\n    int x;\n}\n"
	got := string(Print(parseSource(t, src), Options{UseTabs: true}))
	if want := "class A\n{\n\tint x;\n}\n"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	for _, src := range []string{
		stableSample,
		"namespace N;\n\npublic record Point(int X, int Y);\n",
		"class A\n{\n    string s = $\"{a}:{b}\";\n    int[] xs = { 1, 2 };\n}\n",
	} {
		if err := CheckRoundTrip(parseSource(t, src), Options{}); err != nil {
			t.Errorf("CheckRoundTrip: %v\n%s", err, src)
		}
	}
	if err := CheckRoundTrip(nil, Options{}); err == nil {
		t.Error("CheckRoundTrip(nil) succeeded")
	}
}

func TestWriterBlankLine(t *testing.T) {
	w := NewWriter(Options{}, 0)
	w.BlankLine()
	w.WriteString("{")
	w.BlankLine()
	w.WriteString("a")
	w.BlankLine()
	w.BlankLine()
	w.WriteString("b")
	if got, want := string(w.Bytes()), "{\na\n\nb\n"; got != want {
		t.Errorf("Bytes = %q, want %q", got, want)
	}
}

func TestWriterAppendToPrevLine(t *testing.T) {
	w := NewWriter(Options{}, 0)
	w.WriteString("x;")
	w.BlankLine()
	if !w.AppendToPrevLine(" // c") {
		t.Fatal("AppendToPrevLine refused")
	}
	w.WriteString("y;")
	if got, want := string(w.Bytes()), "x; // c\n\ny;\n"; got != want {
		t.Errorf("Bytes = %q, want %q", got, want)
	}
}
