package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kelexine/winwatch/pkg/domain/model"
)

// Classification stages, evaluated in order until one produces a label.
// Upstream titles are noisy: marketing-era tokens appear with or without a
// "version" prefix, and insider builds often carry no token at all, so the
// build number is kept as a fallback signal.

var (
	explicitVersionRe   = regexp.MustCompile(`(?i)version\s+(\d\dH\d)`)
	standaloneVersionRe = regexp.MustCompile(`(?i)(?:^|[^0-9A-Za-z])(\d\dH\d)(?:[^0-9A-Za-z]|$)`)
)

// buildRange maps a half-open range of major build numbers to a version
// label. Ranges are approximate and only consulted when the title carries no
// version token.
type buildRange struct {
	lo, hi int // hi == 0 means unbounded
	label  model.VersionLabel
	// bucketed labels template the thousands bucket of the major build,
	// e.g. 28110 -> "Insider-28xxx".
	bucketed bool
}

// buildRanges must stay sorted by lo and non-overlapping; append new entries
// when a new version era ships.
var buildRanges = []buildRange{
	{lo: 22621, hi: 23000, label: model.Version22H2},
	{lo: 23000, hi: 26100, label: model.Version23H2},
	{lo: 26100, hi: 26200, label: model.Version24H2},
	{lo: 26200, hi: 27000, label: model.Version25H2},
	{lo: 28000, hi: 0, bucketed: true},
}

// Classify maps a freeform release title and dotted build number to a
// canonical version label. It is pure and total: every input yields a label,
// with VersionUnknown as the terminal fallback.
func Classify(title, buildNumber string) (model.VersionLabel, model.ClassificationStage) {
	if m := explicitVersionRe.FindStringSubmatch(title); m != nil {
		return model.VersionLabel(strings.ToUpper(m[1])), model.StageExplicit
	}

	if m := standaloneVersionRe.FindStringSubmatch(title); m != nil {
		return model.VersionLabel(strings.ToUpper(m[1])), model.StageStandalone
	}

	majorStr := majorComponent(buildNumber)
	if major, err := strconv.Atoi(majorStr); err == nil {
		for _, r := range buildRanges {
			if major < r.lo {
				break
			}
			if r.hi != 0 && major >= r.hi {
				continue
			}
			if r.bucketed {
				return model.VersionLabel(fmt.Sprintf("Insider-%dxxx", major/1000)), model.StageRange
			}
			return r.label, model.StageRange
		}
	}

	if isInsiderTitle(title) && majorStr != "" {
		return model.VersionLabel("Insider-" + majorStr), model.StageInsider
	}

	return model.VersionUnknown, model.StageNone
}

// majorComponent returns the build number's first dotted component.
func majorComponent(buildNumber string) string {
	major, _, _ := strings.Cut(strings.TrimSpace(buildNumber), ".")
	return major
}

func isInsiderTitle(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "insider") || strings.Contains(lower, "preview")
}
