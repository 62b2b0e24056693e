package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// WriteOutput appends the detection result to a GitHub Actions output file
// (the $GITHUB_OUTPUT key=value format; appending, since earlier workflow
// steps share the same file). skipBuild is advisory: it is passed through
// for the workflow to honor, the matrix is always emitted.
func WriteOutput(path string, result *model.DetectionResult, skipBuild bool) error {
	newReleases := result.NewReleases
	if newReleases == nil {
		newReleases = []model.ClassifiedRelease{}
	}
	releasesJSON, err := json.Marshal(newReleases)
	if err != nil {
		return goerr.Wrap(err, "failed to encode new releases", goerr.T(types.ErrTagPersistence))
	}
	matrixJSON, err := json.Marshal(result.Matrix)
	if err != nil {
		return goerr.Wrap(err, "failed to encode build matrix", goerr.T(types.ErrTagPersistence))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "has_new=%t\n", result.HasNew)
	fmt.Fprintf(&sb, "skip_build=%t\n", skipBuild)
	fmt.Fprintf(&sb, "new_releases=%s\n", releasesJSON)
	fmt.Fprintf(&sb, "releases_matrix=%s\n", matrixJSON)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return goerr.Wrap(err, "failed to open actions output file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", path),
		)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write actions output file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", path),
		)
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to flush actions output file",
			goerr.T(types.ErrTagPersistence),
			goerr.V("path", path),
		)
	}

	return nil
}
