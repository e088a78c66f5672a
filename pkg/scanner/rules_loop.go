package scanner

import "regexp"

// loopCall is a call pattern that is reported when it appears inside a loop body.
type loopCall struct {
	ruleID string
	re     *regexp.Regexp
}

// loopCalls are used by the line based analyzers. Go files are checked on the syntax tree instead.
var loopCalls = map[string][]loopCall{
	LangPython: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangPython])},
		{RuleSleepInLoop, regexp.MustCompile(`\b(time\.)?sleep\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangPython])},
		{RuleRegexpInLoop, regexp.MustCompile(`\bre\.compile\(`)},
	},
	LangJavaScript: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangJavaScript])},
		{RuleSleepInLoop, regexp.MustCompile(`await\s+(sleep|delay)\(|setTimeout\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangJavaScript])},
		{RuleRegexpInLoop, regexp.MustCompile(`new RegExp\(`)},
	},
	LangTypeScript: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangTypeScript])},
		{RuleSleepInLoop, regexp.MustCompile(`await\s+(sleep|delay)\(|setTimeout\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangTypeScript])},
		{RuleRegexpInLoop, regexp.MustCompile(`new RegExp\(`)},
	},
	LangJava: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangJava])},
		{RuleSleepInLoop, regexp.MustCompile(`Thread\.sleep\(|TimeUnit\.\w+\.sleep\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangJava])},
		{RuleRegexpInLoop, regexp.MustCompile(`Pattern\.compile\(`)},
	},
	LangCSharp: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangCSharp])},
		{RuleSleepInLoop, regexp.MustCompile(`Thread\.Sleep\(|Task\.Delay\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangCSharp])},
		{RuleRegexpInLoop, regexp.MustCompile(`new Regex\(`)},
	},
	LangPHP: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangPHP])},
		{RuleSleepInLoop, regexp.MustCompile(`\bu?sleep\(`)},
		{RuleQueryInLoop, regexp.MustCompile(queryPatterns[LangPHP])},
	},
	LangRust: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangRust])},
		{RuleSleepInLoop, regexp.MustCompile(`thread::sleep\(`)},
		{RuleRegexpInLoop, regexp.MustCompile(`Regex::new\(`)},
	},
	LangKotlin: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangKotlin])},
		{RuleSleepInLoop, regexp.MustCompile(`Thread\.sleep\(|\bdelay\(`)},
		{RuleRegexpInLoop, regexp.MustCompile(`\bRegex\(`)},
	},
	LangSwift: {
		{RuleNetworkInLoop, regexp.MustCompile(networkPatterns[LangSwift])},
		{RuleSleepInLoop, regexp.MustCompile(`\b(u)?sleep\(|Thread\.sleep\(`)},
	},
	LangScala: {
		{RuleSleepInLoop, regexp.MustCompile(`Thread\.sleep\(`)},
		{RuleRegexpInLoop, regexp.MustCompile(`\.r\b|new Regex\(`)},
	},
	LangC: {
		{RuleSleepInLoop, regexp.MustCompile(`\bu?sleep\(`)},
		{RuleRegexpInLoop, regexp.MustCompile(`\bregcomp\(`)},
	},
	LangCPP: {
		{RuleSleepInLoop, regexp.MustCompile(`sleep_for\(|\bu?sleep\(`)},
		{RuleRegexpInLoop, regexp.MustCompile(`std::regex\s*\w*\(`)},
	},
}

// matchLoopCalls returns hits for calls on a line that is inside a loop body.
func matchLoopCalls(lang, line string, lineNo int) []hit {
	var hits []hit
	for _, lc := range loopCalls[lang] {
		if m := lc.re.FindString(line); m != "" {
			hits = append(hits, hit{ruleID: lc.ruleID, line: lineNo, subject: trimSubject(m)})
		}
	}
	return hits
}
