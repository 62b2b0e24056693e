package usecase

import (
	"fmt"
	"strings"

	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MatrixConfig holds the tables the generator expands over. Order matters:
// jobs are emitted release-major, then build type, then edition.
type MatrixConfig struct {
	BuildTypes   []string
	Editions     []int
	EditionNames map[int]string
}

// DefaultMatrixConfig returns the built-in expansion tables.
func DefaultMatrixConfig() *MatrixConfig {
	return &MatrixConfig{
		BuildTypes: []string{"standard", "core", "nano"},
		Editions:   []int{1, 6},
		EditionNames: map[int]string{
			1: "Home",
			4: "Education",
			6: "Pro",
			7: "Pro N",
		},
	}
}

// Validate rejects configurations the generator cannot expand. It runs at
// startup so an unknown edition code never surfaces mid-run.
func (c *MatrixConfig) Validate() error {
	if len(c.BuildTypes) == 0 {
		return goerr.New("matrix configuration has no build types", goerr.T(types.ErrTagConfig))
	}
	if len(c.Editions) == 0 {
		return goerr.New("matrix configuration has no editions", goerr.T(types.ErrTagConfig))
	}
	for _, bt := range c.BuildTypes {
		if strings.TrimSpace(bt) == "" {
			return goerr.New("matrix configuration has an empty build type", goerr.T(types.ErrTagConfig))
		}
	}
	for _, edition := range c.Editions {
		if _, ok := c.EditionNames[edition]; !ok {
			return goerr.New("unknown edition code in matrix configuration",
				goerr.T(types.ErrTagConfig),
				goerr.V("edition", edition),
			)
		}
	}
	return nil
}

// GenerateMatrix expands newly detected releases into the ordered build-job
// list. Releases without a known version label are skipped entirely, so the
// output length is len(BuildTypes) * len(Editions) per known release.
func GenerateMatrix(cfg *MatrixConfig, releases []model.ClassifiedRelease) model.BuildMatrix {
	matrix := model.BuildMatrix{Include: []model.BuildJob{}}

	for _, release := range releases {
		if !release.Version.Known() {
			continue
		}
		for _, buildType := range cfg.BuildTypes {
			for _, edition := range cfg.Editions {
				editionName := cfg.EditionNames[edition]
				matrix.Include = append(matrix.Include, model.BuildJob{
					Version:     release.Version,
					BuildNumber: release.BuildNumber,
					ISOURL:      release.ISOURL,
					BuildType:   buildType,
					Edition:     edition,
					EditionName: editionName,
					Title:       jobTitle(release.Version, release.BuildNumber, buildType, editionName),
				})
			}
		}
	}

	return matrix
}

// jobTitle synthesizes the CI job display name. Collisions across channels
// sharing a version/build pair are accepted.
func jobTitle(version model.VersionLabel, buildNumber, buildType, editionName string) string {
	title := fmt.Sprintf("%s_%s_%s_%s", version, buildNumber, buildType, editionName)
	return strings.ReplaceAll(title, " ", "_")
}
