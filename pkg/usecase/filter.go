package usecase

import (
	"bytes"
	"path"
	"strings"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/scanner"
)

const (
	DefaultMaxFileSize = 1 << 20
	DefaultConcurrency = 4

	binarySniffSize = 8000
)

var excludedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"target":       {},
	".idea":        {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
}

// fileFilter selects files to be analyzed. It is shared by all fetch modes.
type fileFilter struct {
	exts    map[string]struct{}
	maxSize int64
	seen    map[string]struct{}
}

func newFileFilter(opt model.FetchOptions) *fileFilter {
	f := &fileFilter{
		maxSize: opt.MaxFileSize,
		seen:    map[string]struct{}{},
	}
	if f.maxSize == 0 {
		f.maxSize = DefaultMaxFileSize
	}

	if len(opt.Extensions) > 0 {
		f.exts = map[string]struct{}{}
		for _, ext := range opt.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			f.exts[ext] = struct{}{}
		}
	}
	return f
}

func isExcludedDir(name string) bool {
	_, ok := excludedDirs[name]
	return ok
}

// accept reports whether a file at p with the size should be fetched. A path is accepted only once.
func (x *fileFilter) accept(p string, size int64) bool {
	p = model.CleanPath(p)
	if p == "" || p == "." {
		return false
	}

	segments := strings.Split(p, "/")
	for _, seg := range segments[:len(segments)-1] {
		if isExcludedDir(seg) {
			return false
		}
	}

	lang := scanner.DetectLanguage(p)
	if lang == "" {
		return false
	}
	if x.exts != nil && lang != scanner.LangManifest {
		if _, ok := x.exts[strings.ToLower(path.Ext(p))]; !ok {
			return false
		}
	}

	if size > x.maxSize {
		return false
	}

	if _, ok := x.seen[p]; ok {
		return false
	}
	x.seen[p] = struct{}{}
	return true
}

func isBinary(content []byte) bool {
	if len(content) > binarySniffSize {
		content = content[:binarySniffSize]
	}
	return bytes.IndexByte(content, 0) >= 0
}
