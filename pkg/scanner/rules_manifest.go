package scanner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"golang.org/x/mod/modfile"
)

// DefaultDependencyThreshold is number of declared dependencies above which a manifest is reported.
const DefaultDependencyThreshold = 50

var ptnGemfileGem = regexp.MustCompile(`^\s*gem\s+['"]`)

// countDependencies returns number of dependencies declared in a manifest. ok is false if the manifest could not be read.
func countDependencies(file model.SourceFile) (n int, ok bool) {
	switch file.Base() {
	case "go.mod":
		f, err := modfile.ParseLax(file.Path, file.Content, nil)
		if err != nil {
			return 0, false
		}
		return len(f.Require), true

	case "package.json":
		var pkg struct {
			Dependencies    map[string]string `json:"dependencies"`
			DevDependencies map[string]string `json:"devDependencies"`
		}
		if err := json.Unmarshal(file.Content, &pkg); err != nil {
			return 0, false
		}
		return len(pkg.Dependencies) + len(pkg.DevDependencies), true

	case "requirements.txt":
		sc := bufio.NewScanner(bytes.NewReader(file.Content))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
				continue
			}
			n++
		}
		return n, true

	case "Cargo.toml":
		var cargo map[string]any
		if err := toml.Unmarshal(file.Content, &cargo); err != nil {
			return 0, false
		}
		return countCargoDependencies(cargo), true

	case "Gemfile":
		for _, line := range strings.Split(string(file.Content), "\n") {
			if ptnGemfileGem.MatchString(line) {
				n++
			}
		}
		return n, true

	case "pom.xml":
		var pom struct {
			Dependencies []struct{} `xml:"dependencies>dependency"`
		}
		if err := xml.Unmarshal(file.Content, &pom); err != nil {
			return 0, false
		}
		return len(pom.Dependencies), true
	}

	return 0, false
}

func countCargoDependencies(cargo map[string]any) int {
	n := 0
	for _, key := range []string{"dependencies", "dev-dependencies", "build-dependencies"} {
		if deps, ok := cargo[key].(map[string]any); ok {
			n += len(deps)
		}
	}
	if targets, ok := cargo["target"].(map[string]any); ok {
		for _, t := range targets {
			if tm, ok := t.(map[string]any); ok {
				n += countCargoDependencies(tm)
			}
		}
	}
	return n
}

func analyzeManifest(file model.SourceFile, threshold int) []hit {
	n, ok := countDependencies(file)
	if !ok || n <= threshold {
		return nil
	}
	return []hit{{ruleID: RuleLargeDependency, subject: strconv.Itoa(n)}}
}
