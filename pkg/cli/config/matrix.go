package config

import (
	"os"

	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/kelexine/winwatch/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Matrix holds build-matrix table configuration
type Matrix struct {
	ConfigFile string
}

// matrixFile is the TOML shape of a matrix configuration file:
//
//	build_types = ["standard", "core", "nano"]
//	editions = [1, 6]
//
//	[[edition_names]]
//	code = 1
//	name = "Home"
type matrixFile struct {
	BuildTypes   []string `toml:"build_types"`
	Editions     []int    `toml:"editions"`
	EditionNames []struct {
		Code int    `toml:"code"`
		Name string `toml:"name"`
	} `toml:"edition_names"`
}

// Flags returns CLI flags for matrix configuration
func (c *Matrix) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "matrix-config",
			Usage:       "TOML file overriding the build-type/edition tables",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("WINWATCH_MATRIX_CONFIG"),
		},
	}
}

// Load returns the matrix configuration, validated. Without a config file
// the built-in tables are used.
func (c *Matrix) Load() (*usecase.MatrixConfig, error) {
	cfg := usecase.DefaultMatrixConfig()

	if c.ConfigFile != "" {
		data, err := os.ReadFile(c.ConfigFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read matrix config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("path", c.ConfigFile),
			)
		}

		var file matrixFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse matrix config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("path", c.ConfigFile),
			)
		}

		if len(file.BuildTypes) > 0 {
			cfg.BuildTypes = file.BuildTypes
		}
		if len(file.Editions) > 0 {
			cfg.Editions = file.Editions
		}
		for _, en := range file.EditionNames {
			cfg.EditionNames[en.Code] = en.Name
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
