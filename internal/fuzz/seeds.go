package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB на один seed

// inlineSeeds cover the main shapes: statements, blocks, lists and strings.
var inlineSeeds = []string{
	"pink x =1+2 ; overtune(a,b){ something , other }",
	"a a a a a a a a a ; a",
	"call(alpha,beta,gamma,delta,epsilon,zeta,eta,theta,iota,kappa,lambda,mu);",
	"f(a, b,);",
	"a { b { c; } d } e;",
	"s = \"multi\nline\" + t;",
	"x = \"open",
	"}",
	"{",
	"f({a;b})",
	"f(abc, de);",
	",({,={,}+dddddd } )",
	"g(x {}, {y,});",
	"",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".x" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
