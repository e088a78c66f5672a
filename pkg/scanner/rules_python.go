package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
)

var (
	ptnPyLoop = regexp.MustCompile(`^(async\s+)?(for|while)\b.*:\s*(#.*)?$`)
	ptnPyDef  = regexp.MustCompile(`^(async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
)

type pyBlock struct {
	indent int
	loop   bool
	name   string // function name for def blocks
	line   int
	selfRe *regexp.Regexp
}

// analyzePython detects nested loops, recursion and expensive calls in loops using indentation.
// A file failing the syntax sanity check gets a single parse error hit.
func analyzePython(file model.SourceFile) []hit {
	src := lexPython(string(file.Content))
	if src.problem != "" {
		return []hit{{ruleID: RuleParseError, line: src.problemLine, subject: src.problem}}
	}

	var (
		hits     []hit
		stack    []*pyBlock
		reported = map[*pyBlock]struct{}{}
	)

	checkRecursion := func(fn *pyBlock, line string) {
		if fn == nil {
			return
		}
		if _, ok := reported[fn]; !ok && fn.selfRe.MatchString(line) {
			reported[fn] = struct{}{}
			hits = append(hits, hit{ruleID: RuleRecursion, line: fn.line, subject: fn.name})
		}
	}

	for i, code := range src.lines {
		lineNo := i + 1
		trimmed := strings.TrimLeft(code, " \t")
		if trimmed == "" {
			continue
		}

		// lines continuing an open bracket do not change the block structure
		if src.continued[i] {
			depth, fn := pyScope(stack)
			checkRecursion(fn, trimmed)
			if depth > 0 {
				hits = append(hits, matchLoopCalls(LangPython, trimmed, lineNo)...)
			}
			continue
		}

		indent := pyIndent(code)
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		depth, fn := pyScope(stack)

		if m := ptnPyDef.FindStringSubmatch(trimmed); m != nil {
			name := m[2]
			stack = append(stack, &pyBlock{
				indent: indent,
				name:   name,
				line:   lineNo,
				selfRe: regexp.MustCompile(`(?:^|[^\w.])(?:self\.|cls\.)?` + regexp.QuoteMeta(name) + `\s*\(`),
			})
			continue
		}

		checkRecursion(fn, trimmed)

		if depth > 0 {
			hits = append(hits, matchLoopCalls(LangPython, trimmed, lineNo)...)
		}

		if ptnPyLoop.MatchString(trimmed) {
			if depth > 0 {
				hits = append(hits, hit{ruleID: RuleNestedLoop, line: lineNo, subject: strconv.Itoa(depth + 1)})
			}
			stack = append(stack, &pyBlock{indent: indent, loop: true, line: lineNo})
		}
	}

	return hits
}

// pyScope returns loop depth within the innermost function and the function block itself.
func pyScope(stack []*pyBlock) (int, *pyBlock) {
	depth := 0
	for i := len(stack) - 1; i >= 0; i-- {
		if !stack[i].loop {
			return depth, stack[i]
		}
		depth++
	}
	return depth, nil
}

func pyIndent(line string) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 8 - n%8
		default:
			return n
		}
	}
	return n
}

// pySource is Python source with comments removed and string literal contents blanked.
type pySource struct {
	lines       []string
	continued   []bool // line starts inside an open bracket
	problem     string
	problemLine int
}

var pyClosers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// lexPython strips comments and strings, including triple-quoted blocks, and checks that
// brackets are balanced and strings terminated.
func lexPython(content string) *pySource {
	type opened struct {
		c    rune
		line int
	}

	var (
		src      = &pySource{}
		brackets []opened
		triple   string // closing delimiter of an open triple-quoted string
		tripleAt int
		setIssue = func(line int, msg string) {
			if src.problem == "" {
				src.problem, src.problemLine = msg, line
			}
		}
	)

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		src.continued = append(src.continued, len(brackets) > 0 || triple != "")

		var b strings.Builder
		rs := []rune(strings.TrimRight(raw, " \t\r"))
	scan:
		for j := 0; j < len(rs); j++ {
			c := rs[j]

			if triple != "" {
				if c == '\\' {
					j++
				} else if strings.HasPrefix(string(rs[j:]), triple) {
					j += len(triple) - 1
					triple = ""
					b.WriteString(`"`)
				}
				continue
			}

			switch c {
			case '#':
				break scan
			case '\'', '"':
				q := string(c)
				if strings.HasPrefix(string(rs[j:]), q+q+q) {
					triple, tripleAt = q+q+q, lineNo
					j += 2
					b.WriteString(`"`)
					continue
				}
				end := -1
				for k := j + 1; k < len(rs); k++ {
					if rs[k] == '\\' {
						k++
					} else if rs[k] == c {
						end = k
						break
					}
				}
				if end < 0 {
					if len(rs) > 0 && rs[len(rs)-1] == '\\' {
						break scan
					}
					setIssue(lineNo, "unterminated string literal")
					break scan
				}
				b.WriteString(`""`)
				j = end
			case '(', '[', '{':
				brackets = append(brackets, opened{c: c, line: lineNo})
				b.WriteRune(c)
			case ')', ']', '}':
				if n := len(brackets); n == 0 || brackets[n-1].c != pyClosers[c] {
					setIssue(lineNo, "unmatched '"+string(c)+"'")
				} else {
					brackets = brackets[:n-1]
				}
				b.WriteRune(c)
			default:
				b.WriteRune(c)
			}
		}

		src.lines = append(src.lines, b.String())
	}

	if triple != "" {
		setIssue(tripleAt, "unterminated triple-quoted string")
	}
	if len(brackets) > 0 {
		setIssue(brackets[0].line, "'"+string(brackets[0].c)+"' was never closed")
	}
	return src
}
