package scanner

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// CatalogVersion is version of the built-in rule catalog.
const CatalogVersion = "2024.06"

type MatcherKind string

const (
	// MatcherPattern matches a regular expression line by line.
	MatcherPattern MatcherKind = "pattern"
	// MatcherStructural is a language aware check. Built-in only.
	MatcherStructural MatcherKind = "structural"
	// MatcherManifest checks dependency manifests. Built-in only.
	MatcherManifest MatcherKind = "manifest"
	// MatcherMetadata checks file metadata such as size. Built-in only.
	MatcherMetadata MatcherKind = "metadata"
)

// AnyLanguage is a Patterns key that applies the pattern to every supported source language.
const AnyLanguage = "*"

type Rule struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Category   types.Category    `json:"category"`
	Severity   types.Severity    `json:"severity"`
	Tier       types.DetailLevel `json:"tier"`
	Kind       MatcherKind       `json:"kind"`
	Languages  []string          `json:"languages,omitempty"`
	Patterns   map[string]string `json:"patterns,omitempty"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	BuiltIn    bool              `json:"builtin"`

	compiled map[string]*regexp.Regexp
}

// compile validates the rule and prepares regular expressions of pattern rules.
func (x *Rule) compile() error {
	if x.ID == "" {
		return goerr.Wrap(types.ErrInvalidOption, "rule ID is empty")
	}
	if x.Message == "" {
		return goerr.Wrap(types.ErrInvalidOption, "rule message is empty", goerr.V("id", x.ID))
	}
	if _, err := types.ParseSeverity(string(x.Severity)); err != nil {
		return goerr.Wrap(err, "invalid rule severity", goerr.V("id", x.ID))
	}
	if _, err := types.ParseCategory(string(x.Category)); err != nil {
		return goerr.Wrap(err, "invalid rule category", goerr.V("id", x.ID))
	}
	if x.Category == "" {
		x.Category = types.CategoryGeneral
	}
	if x.Tier == "" {
		x.Tier = x.Severity.DefaultTier()
	}
	if _, err := types.ParseDetailLevel(string(x.Tier)); err != nil {
		return goerr.Wrap(err, "invalid rule tier", goerr.V("id", x.ID))
	}

	if x.Kind != MatcherPattern {
		return nil
	}
	if len(x.Patterns) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "pattern rule has no pattern", goerr.V("id", x.ID))
	}

	x.compiled = make(map[string]*regexp.Regexp, len(x.Patterns))
	for lang, ptn := range x.Patterns {
		re, err := regexp.Compile(ptn)
		if err != nil {
			return goerr.Wrap(types.ErrInvalidOption, "invalid rule pattern",
				goerr.V("id", x.ID), goerr.V("pattern", ptn), goerr.V("cause", err.Error()))
		}
		x.compiled[lang] = re
	}
	return nil
}

// patternFor returns compiled pattern for the language, or nil if the rule does not apply.
func (x *Rule) patternFor(lang string) *regexp.Regexp {
	if re, ok := x.compiled[lang]; ok {
		return re
	}
	if lang == LangManifest {
		return nil
	}
	return x.compiled[AnyLanguage]
}

func (x *Rule) appliesTo(lang string) bool {
	if len(x.Languages) == 0 {
		return true
	}
	for _, l := range x.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// format fills "{subject}" placeholder of message.
func (x *Rule) format(subject string) string {
	return strings.ReplaceAll(x.Message, "{subject}", subject)
}

// Catalog is a versioned set of detection rules.
type Catalog struct {
	Version string
	Rules   []*Rule
}

func (x *Catalog) Lookup(id string) *Rule {
	for _, r := range x.Rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}

const (
	RuleParseError      = "ECO000"
	RuleNestedLoop      = "ECO001"
	RuleRecursion       = "ECO002"
	RuleDeepCopy        = "ECO003"
	RuleWholeFileRead   = "ECO004"
	RuleNetworkCall     = "ECO010"
	RuleNetworkInLoop   = "ECO011"
	RuleSleepInLoop     = "ECO012"
	RuleQueryInLoop     = "ECO020"
	RuleQuery           = "ECO021"
	RuleDeferInLoop     = "ECO030"
	RuleRegexpInLoop    = "ECO031"
	RuleLargeDependency = "ECO040"
	RuleLargeSourceFile = "ECO041"
)

var queryPatterns = map[string]string{
	LangGo:         `\.(Query|QueryRow|Exec)(Context)?\(`,
	LangPython:     `\.(execute|executemany)\(|\.objects\.(get|filter|all)\(`,
	LangJavaScript: `\.(query|findOne|findMany|findAll)\(`,
	LangTypeScript: `\.(query|findOne|findMany|findAll)\(`,
	LangJava:       `\.(executeQuery|executeUpdate|prepareStatement)\(`,
	LangCSharp:     `\.(ExecuteReader|ExecuteNonQuery|ExecuteScalar)\(`,
	LangPHP:        `(mysqli_query|->query|->prepare)\(`,
	LangRuby:       `\.(where|find_by|find)\(`,
}

var networkPatterns = map[string]string{
	LangGo:         `\bhttp\.(Get|Post|Head|PostForm)\(|\.Do\(req`,
	LangPython:     `\brequests\.(get|post|put|delete|patch|head)\(|urlopen\(|httpx\.(get|post)\(`,
	LangJavaScript: `(^|[^\w.])fetch\(|axios(\.(get|post|put|delete|patch))?\(`,
	LangTypeScript: `(^|[^\w.])fetch\(|axios(\.(get|post|put|delete|patch))?\(`,
	LangJava:       `\.openConnection\(|HttpClient\.newHttpClient\(|\.send\(\s*request`,
	LangCSharp:     `\.(GetAsync|PostAsync|SendAsync)\(`,
	LangPHP:        `\bcurl_exec\(|file_get_contents\(\s*['"]https?:`,
	LangRuby:       `Net::HTTP\.(get|post|start)|HTTParty\.(get|post)`,
	LangRust:       `reqwest::(get|Client)`,
	LangKotlin:     `\.openConnection\(|OkHttpClient\(`,
	LangSwift:      `URLSession\.shared\.dataTask\(`,
}

// Builtin returns a new copy of the built-in catalog.
func Builtin() *Catalog {
	rules := []*Rule{
		{
			ID: RuleParseError, Title: "File could not be parsed",
			Category: types.CategoryGeneral, Severity: types.SeverityInfo, Tier: types.DetailComprehensive,
			Kind: MatcherStructural, Languages: []string{LangGo, LangPython},
			Message:    "File could not be parsed, structural checks were skipped: {subject}",
			Suggestion: "Fix the syntax error so the file can be analyzed",
		},
		{
			ID: RuleNestedLoop, Title: "Nested loops",
			Category: types.CategoryCPU, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind:       MatcherStructural,
			Languages:  []string{LangGo, LangPython, LangJavaScript, LangTypeScript, LangJava, LangC, LangCPP, LangCSharp, LangRust, LangPHP, LangKotlin, LangSwift, LangScala},
			Message:    "Nested loop (depth {subject}) can cause quadratic CPU usage",
			Suggestion: "Use a map or set lookup, or precompute the inner collection",
		},
		{
			ID: RuleRecursion, Title: "Recursive function",
			Category: types.CategoryCPU, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind: MatcherStructural, Languages: []string{LangGo, LangPython},
			Message:    "Function {subject} calls itself recursively",
			Suggestion: "Consider an iterative implementation or memoization",
		},
		{
			ID: RuleDeepCopy, Title: "Deep copy",
			Category: types.CategoryMemory, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind: MatcherPattern,
			Patterns: map[string]string{
				LangPython:     `\bcopy\.deepcopy\(|\bdeepcopy\(`,
				LangJavaScript: `structuredClone\(|JSON\.parse\(\s*JSON\.stringify\(|cloneDeep\(`,
				LangTypeScript: `structuredClone\(|JSON\.parse\(\s*JSON\.stringify\(|cloneDeep\(`,
				LangJava:       `SerializationUtils\.clone\(`,
				LangRuby:       `Marshal\.load\(\s*Marshal\.dump\(`,
			},
			Message:    "Deep copy ({subject}) duplicates the whole object graph in memory",
			Suggestion: "Copy only the fields you modify or use immutable data",
		},
		{
			ID: RuleWholeFileRead, Title: "Whole file read into memory",
			Category: types.CategoryMemory, Severity: types.SeverityInfo, Tier: types.DetailComprehensive,
			Kind: MatcherPattern,
			Patterns: map[string]string{
				LangGo:         `\b(os|ioutil)\.ReadFile\(|\bio(util)?\.ReadAll\(`,
				LangPython:     `\.read\(\)|\.readlines\(\)`,
				LangJavaScript: `readFileSync\(`,
				LangTypeScript: `readFileSync\(`,
				LangJava:       `Files\.(readAllBytes|readAllLines|readString)\(`,
				LangCSharp:     `File\.(ReadAllText|ReadAllBytes|ReadAllLines)\(`,
				LangPHP:        `file_get_contents\(`,
				LangRuby:       `File\.read\(`,
				LangRust:       `fs::read(_to_string)?\(`,
			},
			Message:    "Whole content is loaded into memory ({subject})",
			Suggestion: "Stream the data with a buffered reader for large inputs",
		},
		{
			ID: RuleNetworkCall, Title: "Network call",
			Category: types.CategoryNetwork, Severity: types.SeverityInfo, Tier: types.DetailComprehensive,
			Kind:       MatcherPattern,
			Patterns:   networkPatterns,
			Message:    "Network call ({subject})",
			Suggestion: "Cache responses and batch requests where possible",
		},
		{
			ID: RuleNetworkInLoop, Title: "Network call inside loop",
			Category: types.CategoryNetwork, Severity: types.SeverityError, Tier: types.DetailBasic,
			Kind:       MatcherStructural,
			Message:    "Network call inside loop ({subject}) sends one request per iteration",
			Suggestion: "Batch the requests or fetch the data once before the loop",
		},
		{
			ID: RuleSleepInLoop, Title: "Polling with sleep inside loop",
			Category: types.CategoryCPU, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind:       MatcherStructural,
			Message:    "Sleep inside loop ({subject}) suggests busy polling",
			Suggestion: "Use event notification, a ticker with backoff, or a blocking wait",
		},
		{
			ID: RuleQueryInLoop, Title: "Database query inside loop",
			Category: types.CategoryDatabase, Severity: types.SeverityError, Tier: types.DetailBasic,
			Kind:       MatcherStructural,
			Message:    "Database query inside loop ({subject}) causes N+1 queries",
			Suggestion: "Fetch the rows with a single query using IN or JOIN",
		},
		{
			ID: RuleQuery, Title: "Database query",
			Category: types.CategoryDatabase, Severity: types.SeverityInfo, Tier: types.DetailComprehensive,
			Kind:       MatcherPattern,
			Patterns:   queryPatterns,
			Message:    "Database query ({subject})",
			Suggestion: "Select only the needed columns and add indexes for frequent filters",
		},
		{
			ID: RuleDeferInLoop, Title: "defer inside loop",
			Category: types.CategoryMemory, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind: MatcherStructural, Languages: []string{LangGo},
			Message:    "defer inside loop holds resources until the function returns",
			Suggestion: "Move the loop body into a function or release the resource explicitly",
		},
		{
			ID: RuleRegexpInLoop, Title: "Regular expression compiled inside loop",
			Category: types.CategoryCPU, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind:       MatcherStructural,
			Message:    "Regular expression compiled inside loop ({subject})",
			Suggestion: "Compile the expression once outside the loop",
		},
		{
			ID: RuleLargeDependency, Title: "Large dependency footprint",
			Category: types.CategoryDependency, Severity: types.SeverityWarning, Tier: types.DetailDetailed,
			Kind: MatcherManifest, Languages: []string{LangManifest},
			Message:    "Manifest declares {subject} dependencies",
			Suggestion: "Remove unused dependencies to reduce build and download energy",
		},
		{
			ID: RuleLargeSourceFile, Title: "Very large source file",
			Category: types.CategoryGeneral, Severity: types.SeverityInfo, Tier: types.DetailComprehensive,
			Kind:       MatcherMetadata,
			Message:    "Source file is very large ({subject})",
			Suggestion: "Split the file into smaller units",
		},
	}

	for _, r := range rules {
		r.BuiltIn = true
		if err := r.compile(); err != nil {
			panic(err)
		}
	}

	return &Catalog{Version: CatalogVersion, Rules: rules}
}
