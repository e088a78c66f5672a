package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// DefaultLargeFileThreshold is size of a source file above which it is reported as very large.
const DefaultLargeFileThreshold = 256 * 1024

// hit is a raw match of an analyzer. It becomes a Finding when the rule is enabled.
type hit struct {
	ruleID  string
	line    int
	subject string
}

type Scanner struct {
	catalog            *Catalog
	disabled           map[string]struct{}
	dependencyLimit    int
	largeFileThreshold int64
}

type Option func(*Scanner)

// WithCatalog replaces the built-in catalog.
func WithCatalog(catalog *Catalog) Option {
	return func(x *Scanner) {
		x.catalog = catalog
	}
}

func WithDisabledRules(ids ...string) Option {
	return func(x *Scanner) {
		for _, id := range ids {
			x.disabled[strings.TrimSpace(id)] = struct{}{}
		}
	}
}

func WithDependencyThreshold(n int) Option {
	return func(x *Scanner) {
		x.dependencyLimit = n
	}
}

func WithLargeFileThreshold(size int64) Option {
	return func(x *Scanner) {
		x.largeFileThreshold = size
	}
}

func New(options ...Option) *Scanner {
	x := &Scanner{
		catalog:            Builtin(),
		disabled:           map[string]struct{}{},
		dependencyLimit:    DefaultDependencyThreshold,
		largeFileThreshold: DefaultLargeFileThreshold,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// Version returns version of the catalog in use.
func (x *Scanner) Version() string {
	return x.catalog.Version
}

// Rules returns enabled rules.
func (x *Scanner) Rules() []*Rule {
	var rules []*Rule
	for _, r := range x.catalog.Rules {
		if _, ok := x.disabled[r.ID]; !ok {
			rules = append(rules, r)
		}
	}
	return rules
}

func (x *Scanner) enabled(id string) *Rule {
	if _, ok := x.disabled[id]; ok {
		return nil
	}
	return x.catalog.Lookup(id)
}

// ScanFile evaluates all enabled rules against the file. Unsupported file types return no finding.
// Findings are ordered by line then rule ID.
func (x *Scanner) ScanFile(ctx context.Context, file model.SourceFile) []model.Finding {
	lang := DetectLanguage(file.Path)
	if lang == "" {
		logging.From(ctx).Debug("skip unsupported file", slog.String("path", file.Path))
		return nil
	}

	var hits []hit
	if lang == LangManifest {
		hits = analyzeManifest(file, x.dependencyLimit)
	} else {
		switch {
		case lang == LangGo:
			hits = analyzeGo(file)
		case lang == LangPython:
			hits = analyzePython(file)
		case has(braceLanguages, lang):
			hits = analyzeBrace(lang, file)
		}

		if x.largeFileThreshold > 0 && file.Size > x.largeFileThreshold {
			hits = append(hits, hit{ruleID: RuleLargeSourceFile, subject: fmt.Sprintf("%d KiB", file.Size/1024)})
		}
	}

	findings := make([]model.Finding, 0, len(hits))
	for _, h := range hits {
		rule := x.enabled(h.ruleID)
		if rule == nil || !rule.appliesTo(lang) {
			continue
		}
		findings = append(findings, newFinding(rule, file.Path, h.line, h.subject))
	}

	findings = append(findings, x.matchPatterns(lang, file)...)

	slices.SortStableFunc(findings, func(a, b model.Finding) int {
		return model.CompareFindings(a, b)
	})
	return findings
}

func (x *Scanner) matchPatterns(lang string, file model.SourceFile) []model.Finding {
	var rules []*Rule
	for _, r := range x.Rules() {
		if r.Kind == MatcherPattern && r.appliesTo(lang) && r.patternFor(lang) != nil {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil
	}

	lines := strings.Split(string(file.Content), "\n")
	if lang == LangPython {
		// docstrings and string literals never match
		lines = lexPython(string(file.Content)).lines
	}

	var findings []model.Finding
	for i, line := range lines {
		if isCommentLine(lang, line) {
			continue
		}
		for _, r := range rules {
			if m := r.patternFor(lang).FindString(line); m != "" {
				findings = append(findings, newFinding(r, file.Path, i+1, trimSubject(m)))
			}
		}
	}
	return findings
}

// Scan scans all files. Every returned finding refers to a path in files.
func (x *Scanner) Scan(ctx context.Context, files []model.SourceFile) []model.Finding {
	var findings []model.Finding
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		findings = append(findings, x.ScanFile(ctx, file)...)
	}

	logging.From(ctx).Debug("scanned files",
		slog.Int("files", len(files)),
		slog.Int("findings", len(findings)),
	)
	return findings
}

func newFinding(rule *Rule, path string, line int, subject string) model.Finding {
	return model.Finding{
		Path:       path,
		Line:       line,
		RuleID:     rule.ID,
		Category:   rule.Category,
		Severity:   rule.Severity,
		Tier:       rule.Tier,
		Message:    rule.format(subject),
		Suggestion: rule.Suggestion,
	}
}

const maxSubjectLen = 60

func trimSubject(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxSubjectLen {
		return s[:maxSubjectLen] + "..."
	}
	return s
}
