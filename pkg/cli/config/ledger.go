package config

import (
	"context"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/infra/ledger"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Ledger holds ledger store configuration. The JSON file store is the
// default; a Firestore project switches to the Firestore backend.
type Ledger struct {
	Path               string
	FirestoreProject   string
	FirestorePrefix    string
	FirestoreCredsFile string
}

// Flags returns CLI flags for ledger configuration
func (c *Ledger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ledger-path",
			Usage:       "Path to the JSON ledger file",
			Value:       "tracked_releases.json",
			Destination: &c.Path,
			Sources:     cli.EnvVars("WINWATCH_LEDGER_PATH"),
		},
		&cli.StringFlag{
			Name:        "ledger-firestore-project",
			Usage:       "GCP project ID for the Firestore ledger backend (overrides the file backend)",
			Destination: &c.FirestoreProject,
			Sources:     cli.EnvVars("WINWATCH_LEDGER_FIRESTORE_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "ledger-firestore-prefix",
			Usage:       "Collection name prefix for the Firestore ledger backend",
			Value:       "winwatch",
			Destination: &c.FirestorePrefix,
			Sources:     cli.EnvVars("WINWATCH_LEDGER_FIRESTORE_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "ledger-firestore-credentials",
			Usage:       "Service account credentials file for the Firestore ledger backend",
			Destination: &c.FirestoreCredsFile,
			Sources:     cli.EnvVars("WINWATCH_LEDGER_FIRESTORE_CREDENTIALS"),
		},
	}
}

// Store builds the configured ledger store.
func (c *Ledger) Store(ctx context.Context) (interfaces.LedgerStore, error) {
	if c.FirestoreProject != "" {
		var opts []option.ClientOption
		if c.FirestoreCredsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.FirestoreCredsFile))
		}
		return ledger.NewFirestoreStore(ctx, c.FirestoreProject, c.FirestorePrefix, opts...)
	}
	return ledger.NewFileStore(c.Path), nil
}
