package model

// Architecture and channel values accepted from the upstream index.
const (
	ArchAMD64 = "amd64"

	ChannelRetail  = "retail"
	ChannelInsider = "insider"
)

// Release is a candidate build returned by the upstream release index.
// BuildID is the identity key: two releases with the same BuildID are the
// same build even if the index has since rewritten the title.
type Release struct {
	BuildID      string `json:"build_id"`
	BuildNumber  string `json:"build_number"` // dotted numeric string, e.g. "26100.7462"
	Title        string `json:"title"`
	Architecture string `json:"architecture"`
	Channel      string `json:"channel"`
	ISOURL       string `json:"iso_url"`
}

// VersionLabel is a canonical marketing-era identifier (e.g. "24H2") or a
// synthesized insider bucket label (e.g. "Insider-28xxx").
type VersionLabel string

const (
	Version22H2    VersionLabel = "22H2"
	Version23H2    VersionLabel = "23H2"
	Version24H2    VersionLabel = "24H2"
	Version25H2    VersionLabel = "25H2"
	VersionUnknown VersionLabel = "Unknown"
)

// Known reports whether the label is usable for matrix generation.
func (v VersionLabel) Known() bool {
	return v != VersionUnknown && v != ""
}

// ClassificationStage identifies which classifier stage produced a label.
type ClassificationStage string

const (
	StageExplicit   ClassificationStage = "explicit"         // "version 24H2" in the title
	StageStandalone ClassificationStage = "standalone"       // bare ddHd token in the title
	StageRange      ClassificationStage = "numeric-range"    // build-number range table
	StageInsider    ClassificationStage = "insider-fallback" // insider/preview title hint
	StageNone       ClassificationStage = "none"
)

// ClassifiedRelease is a Release with its derived version label. Unknown
// releases are still recorded in the ledger but never enter the matrix.
type ClassifiedRelease struct {
	Release
	Version VersionLabel        `json:"version"`
	Stage   ClassificationStage `json:"-"`
}
