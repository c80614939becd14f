package engine

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/fw/internal/errs"
)

// ChangeKind classifies a contribution for semantic versioning.
type ChangeKind int

const (
	Breaking ChangeKind = iota
	Feature
	Fix
)

// ChangeKinds lists the kinds in prompt order.
var ChangeKinds = []ChangeKind{Breaking, Feature, Fix}

func (k ChangeKind) String() string {
	switch k {
	case Breaking:
		return "MAJOR"
	case Feature:
		return "MINOR"
	case Fix:
		return "PATCH"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Label is the prompt text for the kind.
func (k ChangeKind) Label() string {
	switch k {
	case Breaking:
		return "MAJOR - Breaking change"
	case Feature:
		return "MINOR - New feature"
	case Fix:
		return "PATCH - Bug fix"
	default:
		return k.String()
	}
}

var changeKindNames = []struct {
	name string
	kind ChangeKind
}{
	{"breaking", Breaking},
	{"major", Breaking},
	{"feature", Feature},
	{"minor", Feature},
	{"fix", Fix},
	{"patch", Fix},
}

// ChangeKindNames lists the names ParseChangeKind accepts exactly.
func ChangeKindNames() []string {
	names := make([]string, len(changeKindNames))
	for i, n := range changeKindNames {
		names[i] = n.name
	}
	return names
}

type kindSource []struct {
	name string
	kind ChangeKind
}

func (s kindSource) String(i int) string { return s[i].name }
func (s kindSource) Len() int            { return len(s) }

// ParseChangeKind matches s against the kind names. Exact names win;
// otherwise the best fuzzy match is used, so "feat" or "brk" work.
func ParseChangeKind(s string) (ChangeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, errs.New(errs.InvalidInput, "change type is empty")
	}
	for _, n := range changeKindNames {
		if n.name == s {
			return n.kind, nil
		}
	}
	matches := fuzzy.FindFrom(s, kindSource(changeKindNames))
	if len(matches) == 0 {
		return 0, errs.Newf(errs.InvalidInput, "unknown change type %q", s).
			WithGuidance("Use one of: breaking, feature, fix (or major, minor, patch)")
	}
	best := changeKindNames[matches[0].Index].kind
	for _, m := range matches[1:] {
		if m.Score == matches[0].Score && changeKindNames[m.Index].kind != best {
			return 0, errs.Newf(errs.InvalidInput, "ambiguous change type %q", s).
				WithGuidance("Use one of: breaking, feature, fix (or major, minor, patch)")
		}
	}
	return best, nil
}

// SuggestVersion bumps current according to kind. It returns "" when
// current is not a semantic version.
func SuggestVersion(current string, kind ChangeKind) string {
	v, err := semver.NewVersion(current)
	if err != nil {
		return ""
	}
	var next semver.Version
	switch kind {
	case Breaking:
		next = v.IncMajor()
	case Feature:
		next = v.IncMinor()
	default:
		next = v.IncPatch()
	}
	return next.String()
}

// DescribeVersionChange summarizes the move from before to after.
func DescribeVersionChange(before, after string) string {
	if before == after {
		return fmt.Sprintf("Version unchanged: %s", after)
	}
	a, errA := semver.NewVersion(before)
	b, errB := semver.NewVersion(after)
	if errA != nil || errB != nil {
		return fmt.Sprintf("Version: %s → %s", before, after)
	}
	switch {
	case b.LessThan(a):
		return fmt.Sprintf("Version: %s → %s (downgrade)", before, after)
	case b.Major() != a.Major():
		return fmt.Sprintf("Version: %s → %s (major, review breaking changes)", before, after)
	case b.Minor() != a.Minor():
		return fmt.Sprintf("Version: %s → %s (minor)", before, after)
	default:
		return fmt.Sprintf("Version: %s → %s (patch)", before, after)
	}
}
