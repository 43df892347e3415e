package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// snippets cover the constructs the rewrite touches.
var snippets = []string{
	"",
	"using NUnit.Framework;\n",
	`using NUnit.Framework;

namespace Demo
{
    [TestFixture]
    public class CalcTests
    {
        private int _x;

        [SetUp]
        public void Init() { _x = 1; }

        [TearDown]
        public void Cleanup() { _x = 0; }

        [Test]
        public void Adds()
        {
            Assert.AreEqual(2, _x + 1, "sum");
            Assert.IsTrue(_x > 0);
        }

        [TestCase(1, 2)]
        [TestCase(3, 4)]
        public void Cases(int a, int b) => Assert.AreNotEqual(a, b, "differ");
    }
}
`,
	`namespace Demo;

[SetUpFixture]
public class Globals
{
    [OneTimeSetUp]
    public void Start()
    {
        Db.Connect();
    }
}
`,
	"class C { void M() { Run(() => { Assert.IsNull(x, \"m\"); }); } }",
	"[Test] public void M() { if (a < b && c > d) { Assert.IsFalse(Get<int, string>()); } }",
	"#region Tests\n/* block */ class C { } // tail\n#endregion\n",
	"class C { void M( { }",
	"}}}{{{",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippets {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет *.cs из testdata пакетов, если они есть.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".cs" || filepath.Base(filepath.Dir(path)) != "testdata" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, n int) []byte {
	if len(src) <= n {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:n]...)
}
