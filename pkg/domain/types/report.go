package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputHTML OutputFormat = "html"
)

// OutputFormats lists supported formats in the order shown in help messages.
var OutputFormats = []OutputFormat{OutputText, OutputJSON, OutputHTML}

func ParseOutputFormat(v string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(v)))
	switch f {
	case OutputText, OutputJSON, OutputHTML:
		return f, nil
	}
	return "", goerr.Wrap(ErrUnsupportedFormat, "output format must be text, json or html", goerr.V("format", v))
}

// Ext returns file extension for the format, used for uploaded report objects.
func (x OutputFormat) Ext() string {
	if x == OutputText {
		return "txt"
	}
	return string(x)
}

func (x OutputFormat) ContentType() string {
	switch x {
	case OutputJSON:
		return "application/json"
	case OutputHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// DetailLevel controls which findings are surfaced in a report. Levels are
// ordered: basic < detailed < comprehensive.
type DetailLevel string

const (
	DetailBasic         DetailLevel = "basic"
	DetailDetailed      DetailLevel = "detailed"
	DetailComprehensive DetailLevel = "comprehensive"
)

func ParseDetailLevel(v string) (DetailLevel, error) {
	d := DetailLevel(strings.ToLower(strings.TrimSpace(v)))
	if d.rank() < 0 {
		return "", goerr.Wrap(ErrInvalidOption, "detail level must be basic, detailed or comprehensive", goerr.V("detail", v))
	}
	return d, nil
}

func (x DetailLevel) rank() int {
	switch x {
	case DetailBasic:
		return 0
	case DetailDetailed:
		return 1
	case DetailComprehensive:
		return 2
	}
	return -1
}

// Includes reports whether a finding of tier t is visible at detail level x.
func (x DetailLevel) Includes(t DetailLevel) bool {
	return t.rank() >= 0 && t.rank() <= x.rank()
}

func (x DetailLevel) AtLeast(t DetailLevel) bool {
	return x.rank() >= t.rank()
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severities lists severities from the most to the least severe.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

func ParseSeverity(v string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(v)))
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return s, nil
	}
	return "", goerr.Wrap(ErrInvalidOption, "severity must be info, warning or error", goerr.V("severity", v))
}

// DefaultTier is the detail tier used for a rule that does not declare one.
func (x Severity) DefaultTier() DetailLevel {
	switch x {
	case SeverityError:
		return DetailBasic
	case SeverityWarning:
		return DetailDetailed
	default:
		return DetailComprehensive
	}
}

type Category string

const (
	CategoryCPU        Category = "cpu"
	CategoryMemory     Category = "memory"
	CategoryNetwork    Category = "network"
	CategoryIO         Category = "io"
	CategoryDatabase   Category = "database"
	CategoryDependency Category = "dependency"
	CategoryGeneral    Category = "general"
)

func ParseCategory(v string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(v)))
	switch c {
	case CategoryCPU, CategoryMemory, CategoryNetwork, CategoryIO, CategoryDatabase, CategoryDependency, CategoryGeneral:
		return c, nil
	case "":
		return CategoryGeneral, nil
	}
	return "", goerr.Wrap(ErrInvalidOption, "unknown rule category", goerr.V("category", v))
}

type FetchMode string

const (
	FetchModeTree    FetchMode = "tree"
	FetchModeArchive FetchMode = "archive"
)

func ParseFetchMode(v string) (FetchMode, error) {
	switch m := FetchMode(strings.ToLower(v)); m {
	case FetchModeTree, FetchModeArchive:
		return m, nil
	case "":
		return FetchModeTree, nil
	}
	return "", goerr.Wrap(ErrInvalidOption, "fetch mode must be tree or archive", goerr.V("mode", v))
}
