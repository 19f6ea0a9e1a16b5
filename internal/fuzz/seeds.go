package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16  // 64 KiB
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"function f() {}",
	"contract C { function f(uint x) { x = x + 1; } }",
	"contract C { function f(uint8 a) { require(a < 10); a = 3; } }",
	"function f() { uint a; a = 1; a = 2; { a = a * 2; } }",
	"function f() { unchecked { uint a = 2 ** 255; } }",
	"contract C { mapping(address => uint) m; function f() { m[msg.sender] = 1; } }",
	"function f(uint x) { if (x > 0) { x = 1; } while (true) {} }",
	"function f() { require = 1; }",
	"function f() { (uint a, uint b) = (1, 2); }",
	"function f() { g(1, 2); } function g(uint a, uint b) {}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.sol файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sol" {
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
