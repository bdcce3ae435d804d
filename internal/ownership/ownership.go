// Package ownership parses and queries the repository ownership manifest: a
// routing table mapping path patterns to the reviewers responsible for them.
//
// The manifest is pure metadata. The hosting platform consumes it for review
// assignment; this package exists so the generator's CLI can lint the manifest
// and answer "who owns this path" queries with the platform's semantics: the
// last matching rule wins.
package ownership

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Rule maps one path pattern to its owners.
type Rule struct {
	// Pattern is one of:
	//   "*"           every path
	//   "*.ext"       glob, matched against the path's base name
	//   "/dir/path"   anchored prefix, matching the file or everything under
	//                 the directory
	//   "dir/path"    unanchored: the same, but the prefix may start at any
	//                 directory level
	Pattern string

	// Owners are reviewer identities: "@user", "@org/team" or an email
	// address.
	Owners []string

	// Line is the 1-based manifest line the rule was read from.
	Line int
}

// Manifest is the parsed ownership routing table, in file order.
type Manifest struct {
	Rules []Rule
}

// Load reads a manifest file.
func Load(filePath string) (*Manifest, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open ownership manifest %q", filePath)
	}
	defer f.Close()
	m, err := Parse(f)
	return m, errors.Wrapf(err, "ownership manifest %q", filePath)
}

// Parse reads a manifest: one "pattern owner..." rule per line, "#" comments,
// blank lines ignored.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		m.Rules = append(m.Rules, Rule{
			Pattern: fields[0],
			Owners:  fields[1:],
			Line:    lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read ownership manifest")
	}
	return m, nil
}

// Match returns the owners responsible for the given repository path, or nil
// when no rule matches. The last matching rule wins.
func (m *Manifest) Match(repoPath string) []string {
	repoPath = strings.TrimPrefix(repoPath, "/")
	var owners []string
	for _, rule := range m.Rules {
		if rule.matches(repoPath) {
			owners = rule.Owners
		}
	}
	return owners
}

func (r Rule) matches(repoPath string) bool {
	pattern := r.Pattern
	if pattern == "*" {
		return true
	}
	if strings.ContainsAny(pattern, "*?[") {
		matched, err := path.Match(pattern, path.Base(repoPath))
		return err == nil && matched
	}
	if anchored, ok := strings.CutPrefix(pattern, "/"); ok {
		return prefixMatches(anchored, repoPath)
	}
	// Unanchored: the pattern may start at any directory level.
	if prefixMatches(pattern, repoPath) {
		return true
	}
	return strings.Contains("/"+repoPath, "/"+strings.TrimSuffix(pattern, "/")+"/")
}

func prefixMatches(pattern, repoPath string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	return repoPath == pattern || strings.HasPrefix(repoPath, pattern+"/")
}

// Lint reports manifest problems: rules without owners, malformed owner
// identifiers, and rules fully shadowed by a later identical pattern.
func (m *Manifest) Lint() []string {
	var problems []string
	lastLineForPattern := make(map[string]int)
	for _, rule := range m.Rules {
		lastLineForPattern[rule.Pattern] = rule.Line
	}
	for _, rule := range m.Rules {
		if len(rule.Owners) == 0 {
			problems = append(problems,
				lintf(rule.Line, "rule %q has no owners", rule.Pattern))
		}
		for _, owner := range rule.Owners {
			if !validOwner(owner) {
				problems = append(problems,
					lintf(rule.Line, "owner %q is neither a @handle nor an email address", owner))
			}
		}
		if last := lastLineForPattern[rule.Pattern]; last != rule.Line {
			problems = append(problems,
				lintf(rule.Line, "rule %q is shadowed by the identical pattern on line %d", rule.Pattern, last))
		}
	}
	return problems
}

func lintf(line int, format string, args ...any) string {
	return fmt.Sprintf("line %d: "+format, append([]any{line}, args...)...)
}

func validOwner(owner string) bool {
	if strings.HasPrefix(owner, "@") {
		return len(owner) > 1
	}
	at := strings.Index(owner, "@")
	return at > 0 && at < len(owner)-1
}
