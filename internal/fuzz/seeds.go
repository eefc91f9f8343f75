package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса

// querySeeds cover every token kind and the usual error shapes.
var querySeeds = []string{
	"",
	"apple",
	"apple AND banana OR cherry",
	`title:"apple juice"~3 AND NOT (#brand OR @user)`,
	"authorFollowers:[0 TO 2000000000]",
	"authorFollowers:{-5 TO 100}",
	"a* OR *apple OR ap????le",
	"apple NEAR/5 pie NEAR/3f crumble",
	"NEAR/abc ~Case",
	"site:example.com <<< shop only >>> -1",
	"apple and not banana",
	"language:en AND country:GB",
	`"unterminated`,
	"(apple OR",
	"<<< open comment",
	"[a TO b]",
	"((((((((apple))))))))",
}

func addCorpusSeeds(f *testing.F) {
	for _, q := range querySeeds {
		f.Add([]byte(q))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.bwq файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".bwq" {
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
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
