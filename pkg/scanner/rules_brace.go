package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
)

var (
	ptnBraceLoop   = braceLoopPattern("for|while|do")
	ptnDoWhileTail = regexp.MustCompile(`^}\s*while\b.*;\s*$`)

	braceLoopPatterns = map[string]*regexp.Regexp{
		LangPHP:    braceLoopPattern("for|foreach|while|do"),
		LangCSharp: braceLoopPattern("for|foreach|while|do"),
		LangRust:   braceLoopPattern("for|while|loop"),
		LangSwift:  braceLoopPattern("for|while|repeat"),
	}
)

func braceLoopPattern(keywords string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^\w.$])(` + keywords + `)\b|\.(forEach|foreach)\s*[({]`)
}

func isBraceLoop(lang, line string) bool {
	re, ok := braceLoopPatterns[lang]
	if !ok {
		re = ptnBraceLoop
	}
	if !re.MatchString(line) || ptnDoWhileTail.MatchString(line) {
		return false
	}
	// Rust uses "for" in trait implementations such as `impl Trait for Type`
	if lang == LangRust && (strings.HasPrefix(line, "impl") || strings.Contains(line, " impl ")) {
		return false
	}
	return true
}

// analyzeBrace detects nested loops and expensive calls in loops for C-like languages by tracking brace depth.
// A loop keyword marks the next opened brace as a loop body.
func analyzeBrace(lang string, file model.SourceFile) []hit {
	var (
		hits    []hit
		blocks  []bool // true if the block is a loop body
		loops   int
		pending bool
		inBlock bool // inside /* */ comment
	)

	for i, raw := range strings.Split(string(file.Content), "\n") {
		lineNo := i + 1
		code := stripCode(lang, raw, &inBlock)
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if loops > 0 {
			hits = append(hits, matchLoopCalls(lang, trimmed, lineNo)...)
		}

		if isBraceLoop(lang, trimmed) {
			if loops > 0 {
				hits = append(hits, hit{ruleID: RuleNestedLoop, line: lineNo, subject: strconv.Itoa(loops + 1)})
			}
			pending = true
		}

		paren := 0
		for _, c := range code {
			switch c {
			case '(':
				paren++
			case ')':
				paren--
			case '{':
				blocks = append(blocks, pending)
				if pending {
					loops++
				}
				pending = false
			case '}':
				if n := len(blocks); n > 0 {
					if blocks[n-1] {
						loops--
					}
					blocks = blocks[:n-1]
				}
			case ';':
				// a loop without braces ends at the first statement terminator
				if paren <= 0 {
					pending = false
				}
			}
		}
	}

	return hits
}

// singleQuoteStrings are languages where '...' is a string rather than a char literal.
var singleQuoteStrings = map[string]struct{}{
	LangJavaScript: {},
	LangTypeScript: {},
	LangPHP:        {},
}

// opensQuote reports whether the single quote at rs[i] starts a literal. Outside singleQuoteStrings
// only char literals such as 'x' and '\n' qualify, so Rust lifetimes and Scala symbols are kept.
func opensQuote(lang string, rs []rune, i int) bool {
	if _, ok := singleQuoteStrings[lang]; ok {
		return true
	}
	if i+1 < len(rs) && rs[i+1] == '\\' {
		return true
	}
	return i+2 < len(rs) && rs[i+2] == '\''
}

// stripCode removes comments and string or char literal contents from a line. inBlock carries /* */ state between lines.
func stripCode(lang, line string, inBlock *bool) string {
	var b strings.Builder
	var quote rune
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		next := rune(0)
		if i+1 < len(rs) {
			next = rs[i+1]
		}

		switch {
		case *inBlock:
			if c == '*' && next == '/' {
				*inBlock = false
				i++
			}
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
				b.WriteRune(c)
			}
		case c == '/' && next == '/':
			return b.String()
		case c == '/' && next == '*':
			*inBlock = true
			i++
		case c == '"' || c == '`' || (c == '\'' && opensQuote(lang, rs, i)):
			quote = c
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
