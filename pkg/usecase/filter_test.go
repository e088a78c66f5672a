package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/usecase"
)

func TestFileFilter(t *testing.T) {
	paths := []string{
		"main.go",
		"./main.go",
		"cmd/app/main.go",
		"node_modules/pkg/index.js",
		"web/node_modules/pkg/index.js",
		"src/vendor.go",
		"vendor/lib/lib.go",
		"docs/README.md",
		"assets/logo.png",
		"go.mod",
		"web/package.json",
		"app/models.py",
		"big.py",
		"lib/Util.JAVA",
	}
	sizes := map[string]int64{"big.py": 2 << 20}

	t.Run("default options", func(t *testing.T) {
		actual := usecase.AcceptedPathsForTest(model.FetchOptions{}, sizes, paths...)
		gt.V(t, actual).Equal([]string{
			"main.go",
			"cmd/app/main.go",
			"src/vendor.go",
			"go.mod",
			"web/package.json",
			"app/models.py",
			"lib/Util.JAVA",
		})
	})

	t.Run("extension list keeps manifests", func(t *testing.T) {
		actual := usecase.AcceptedPathsForTest(model.FetchOptions{Extensions: []string{"py", ".JAVA"}}, sizes, paths...)
		gt.V(t, actual).Equal([]string{
			"go.mod",
			"web/package.json",
			"app/models.py",
			"lib/Util.JAVA",
		})
	})

	t.Run("max file size", func(t *testing.T) {
		actual := usecase.AcceptedPathsForTest(model.FetchOptions{MaxFileSize: 4 << 20}, sizes, "big.py")
		gt.V(t, actual).Equal([]string{"big.py"})

		actual = usecase.AcceptedPathsForTest(model.FetchOptions{MaxFileSize: 100}, map[string]int64{"a.go": 101, "b.go": 100}, "a.go", "b.go")
		gt.V(t, actual).Equal([]string{"b.go"})
	})
}

func TestIsBinary(t *testing.T) {
	gt.False(t, usecase.IsBinaryForTest([]byte("package main\n")))
	gt.True(t, usecase.IsBinaryForTest([]byte("PNG\x00\x01")))
	gt.False(t, usecase.IsBinaryForTest([]byte(strings.Repeat("a", 8000)+"\x00")))
	gt.False(t, usecase.IsBinaryForTest(nil))
}
