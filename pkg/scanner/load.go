package scanner

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

//go:embed schema/catalog.cue
var catalogSchema []byte

// CatalogFile is an external catalog. It adds pattern rules and disables rules of the built-in catalog.
type CatalogFile struct {
	Version string     `json:"version,omitempty" yaml:"version"`
	Disable []string   `json:"disable,omitempty" yaml:"disable"`
	Rules   []RuleFile `json:"rules,omitempty" yaml:"rules"`
}

type RuleFile struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Category   string   `json:"category,omitempty" yaml:"category"`
	Severity   string   `json:"severity" yaml:"severity"`
	Tier       string   `json:"tier,omitempty" yaml:"tier"`
	Languages  []string `json:"languages,omitempty" yaml:"languages"`
	Pattern    string   `json:"pattern" yaml:"pattern"`
	Message    string   `json:"message" yaml:"message"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion"`
}

// LoadCatalogFile reads an external catalog. Format is chosen by extension: .cue, .yaml/.yml or .json.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to read rule catalog",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return ParseCatalogFile(filepath.Base(path), data)
}

func ParseCatalogFile(name string, data []byte) (*CatalogFile, error) {
	var cf CatalogFile

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".cue":
		if err := decodeCUE(name, data, &cf); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "failed to parse YAML rule catalog",
				goerr.V("name", name), goerr.V("cause", err.Error()))
		}
	case ".json":
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "failed to parse JSON rule catalog",
				goerr.V("name", name), goerr.V("cause", err.Error()))
		}
	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "rule catalog must be .cue, .yaml, .yml or .json",
			goerr.V("name", name))
	}

	return &cf, nil
}

// decodeCUE validates data against #Catalog schema and decodes it.
func decodeCUE(name string, data []byte, dst *CatalogFile) error {
	cctx := cuecontext.New()

	schema := cctx.CompileBytes(catalogSchema, cue.Filename("catalog_schema.cue")).LookupPath(cue.ParsePath("#Catalog"))
	if err := schema.Err(); err != nil {
		return goerr.Wrap(err, "failed to compile catalog schema")
	}

	v := cctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "failed to compile CUE rule catalog",
			goerr.V("name", name), goerr.V("cause", err.Error()))
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "CUE rule catalog does not match schema",
			goerr.V("name", name), goerr.V("cause", err.Error()))
	}

	if err := unified.Decode(dst); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "failed to decode CUE rule catalog",
			goerr.V("name", name), goerr.V("cause", err.Error()))
	}
	return nil
}

// Merge returns a new catalog made of the built-in rules not disabled by cf and the rules of cf.
func (x *Catalog) Merge(cf *CatalogFile) (*Catalog, error) {
	disabled := make(map[string]struct{}, len(cf.Disable))
	for _, id := range cf.Disable {
		disabled[id] = struct{}{}
	}

	merged := &Catalog{Version: x.Version}
	if cf.Version != "" {
		merged.Version = x.Version + "+" + cf.Version
	}

	seen := map[string]struct{}{}
	for _, r := range x.Rules {
		if _, ok := disabled[r.ID]; ok {
			continue
		}
		merged.Rules = append(merged.Rules, r)
		seen[r.ID] = struct{}{}
	}

	for _, rf := range cf.Rules {
		if _, ok := seen[rf.ID]; ok {
			return nil, goerr.Wrap(types.ErrInvalidOption, "duplicated rule ID in catalog", goerr.V("id", rf.ID))
		}
		rule, err := rf.toRule()
		if err != nil {
			return nil, err
		}
		merged.Rules = append(merged.Rules, rule)
		seen[rf.ID] = struct{}{}
	}

	return merged, nil
}

func (x RuleFile) toRule() (*Rule, error) {
	category, err := types.ParseCategory(x.Category)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid rule", goerr.V("id", x.ID))
	}
	severity, err := types.ParseSeverity(x.Severity)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid rule", goerr.V("id", x.ID))
	}

	rule := &Rule{
		ID:         x.ID,
		Title:      x.Title,
		Category:   category,
		Severity:   severity,
		Tier:       types.DetailLevel(strings.ToLower(x.Tier)),
		Kind:       MatcherPattern,
		Languages:  x.Languages,
		Message:    x.Message,
		Suggestion: x.Suggestion,
	}

	// one pattern applies to all listed languages
	rule.Patterns = map[string]string{}
	if len(x.Languages) == 0 {
		rule.Patterns[AnyLanguage] = x.Pattern
	}
	for _, lang := range x.Languages {
		rule.Patterns[lang] = x.Pattern
	}

	if err := rule.compile(); err != nil {
		return nil, err
	}
	return rule, nil
}

// LoadCatalog returns the built-in catalog merged with the external catalog at path. Empty path returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := Builtin()
	if path == "" {
		return catalog, nil
	}

	cf, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(cf)
}
