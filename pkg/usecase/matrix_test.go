package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/kelexine/winwatch/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func classified(id, build, title string, version model.VersionLabel) model.ClassifiedRelease {
	return model.ClassifiedRelease{
		Release: model.Release{
			BuildID:      id,
			BuildNumber:  build,
			Title:        title,
			Architecture: model.ArchAMD64,
			Channel:      model.ChannelRetail,
			ISOURL:       "https://example.com/download.php?id=" + id,
		},
		Version: version,
	}
}

func TestGenerateMatrix(t *testing.T) {
	cfg := usecase.DefaultMatrixConfig()

	release := classified("abc", "26100.7462", "Windows 11, version 24H2", model.Version24H2)
	matrix := usecase.GenerateMatrix(cfg, []model.ClassifiedRelease{release})

	// 3 build types x 2 editions
	gt.Equal(t, len(matrix.Include), 6)

	// Deterministic order: build type major, edition minor
	wantOrder := []struct {
		buildType string
		edition   int
		name      string
	}{
		{"standard", 1, "Home"},
		{"standard", 6, "Pro"},
		{"core", 1, "Home"},
		{"core", 6, "Pro"},
		{"nano", 1, "Home"},
		{"nano", 6, "Pro"},
	}
	for i, want := range wantOrder {
		job := matrix.Include[i]
		gt.Equal(t, job.BuildType, want.buildType)
		gt.Equal(t, job.Edition, want.edition)
		gt.Equal(t, job.EditionName, want.name)
		gt.Equal(t, job.Version, model.Version24H2)
		gt.Equal(t, job.BuildNumber, "26100.7462")
		gt.Equal(t, job.ISOURL, release.ISOURL)
	}

	gt.Equal(t, matrix.Include[0].Title, "24H2_26100.7462_standard_Home")
}

func TestGenerateMatrixSizeLaw(t *testing.T) {
	cfg := usecase.DefaultMatrixConfig()

	releases := []model.ClassifiedRelease{
		classified("a", "26100.1", "Windows 11 24H2", model.Version24H2),
		classified("b", "99999.1", "mystery build", model.VersionUnknown),
		classified("c", "26200.1", "Windows 11 25H2", model.Version25H2),
		classified("d", "28110.1", "Windows 11 Insider Preview", model.VersionLabel("Insider-28xxx")),
	}

	matrix := usecase.GenerateMatrix(cfg, releases)

	// 6 jobs per release with a known version; Unknown is excluded entirely
	gt.Equal(t, len(matrix.Include), 6*3)
	for _, job := range matrix.Include {
		gt.True(t, job.Version != model.VersionUnknown)
	}
}

func TestGenerateMatrixEmpty(t *testing.T) {
	cfg := usecase.DefaultMatrixConfig()

	matrix := usecase.GenerateMatrix(cfg, nil)
	gt.Equal(t, len(matrix.Include), 0)

	matrix = usecase.GenerateMatrix(cfg, []model.ClassifiedRelease{
		classified("x", "1.2", "mystery", model.VersionUnknown),
	})
	gt.Equal(t, len(matrix.Include), 0)
}

func TestGenerateMatrixSpaceInEditionName(t *testing.T) {
	cfg := usecase.DefaultMatrixConfig()
	cfg.Editions = []int{7}

	matrix := usecase.GenerateMatrix(cfg, []model.ClassifiedRelease{
		classified("a", "26100.1", "Windows 11 24H2", model.Version24H2),
	})

	gt.Equal(t, len(matrix.Include), 3)
	gt.Equal(t, matrix.Include[0].EditionName, "Pro N")
	gt.Equal(t, matrix.Include[0].Title, "24H2_26100.1_standard_Pro_N")
}

func TestMatrixConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *usecase.MatrixConfig)
		wantErr bool
	}{
		{
			name:   "default is valid",
			mutate: func(cfg *usecase.MatrixConfig) {},
		},
		{
			name: "unknown edition code",
			mutate: func(cfg *usecase.MatrixConfig) {
				cfg.Editions = append(cfg.Editions, 99)
			},
			wantErr: true,
		},
		{
			name: "no build types",
			mutate: func(cfg *usecase.MatrixConfig) {
				cfg.BuildTypes = nil
			},
			wantErr: true,
		},
		{
			name: "no editions",
			mutate: func(cfg *usecase.MatrixConfig) {
				cfg.Editions = nil
			},
			wantErr: true,
		},
		{
			name: "blank build type",
			mutate: func(cfg *usecase.MatrixConfig) {
				cfg.BuildTypes = []string{"standard", " "}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := usecase.DefaultMatrixConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
