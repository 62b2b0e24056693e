package ledger

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	buildsCollection = "builds"
	metaCollection   = "meta"
	metaDocID        = "state"
)

// firestoreMeta holds the run counters, kept in a single document separate
// from the per-build documents.
type firestoreMeta struct {
	LastCheck  time.Time `firestore:"last_check"`
	CheckCount int       `firestore:"check_count"`
}

type firestoreStore struct {
	client *firestore.Client
	prefix string
}

// NewFirestoreStore creates a ledger store backed by Firestore, for runners
// without a persistent disk. Collections are namespaced by prefix
// (e.g. "winwatch" yields winwatch_builds and winwatch_meta).
func NewFirestoreStore(ctx context.Context, projectID, prefix string, opts ...option.ClientOption) (interfaces.LedgerStore, error) {
	if projectID == "" {
		return nil, goerr.New("firestore project ID is empty", goerr.T(types.ErrTagConfig))
	}
	if prefix == "" {
		prefix = "winwatch"
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.T(types.ErrTagPersistence),
			goerr.V("project_id", projectID),
		)
	}

	return &firestoreStore{client: client, prefix: prefix}, nil
}

func (s *firestoreStore) builds() *firestore.CollectionRef {
	return s.client.Collection(s.prefix + "_" + buildsCollection)
}

func (s *firestoreStore) meta() *firestore.DocumentRef {
	return s.client.Collection(s.prefix + "_" + metaCollection).Doc(metaDocID)
}

// Load reads the counters document and all build documents. An empty
// project (no meta doc, no builds) is the first run, not an error.
func (s *firestoreStore) Load(ctx context.Context) (*model.LedgerState, error) {
	state := model.NewLedgerState()

	snap, err := s.meta().Get(ctx)
	switch {
	case status.Code(err) == codes.NotFound:
		// first run
	case err != nil:
		return nil, goerr.Wrap(err, "failed to read ledger meta document",
			goerr.T(types.ErrTagPersistence),
		)
	default:
		var meta firestoreMeta
		if err := snap.DataTo(&meta); err != nil {
			return nil, goerr.Wrap(err, "ledger meta document is corrupt",
				goerr.T(types.ErrTagPersistence),
			)
		}
		state.LastCheck = meta.LastCheck
		state.CheckCount = meta.CheckCount
	}

	iter := s.builds().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate ledger build documents",
				goerr.T(types.ErrTagPersistence),
			)
		}

		var entry model.LedgerEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "ledger build document is corrupt",
				goerr.T(types.ErrTagPersistence),
				goerr.V("doc_id", doc.Ref.ID),
			)
		}
		state.Builds[entry.BuildID] = &entry
	}

	return state, nil
}

// Save writes all build documents, then the counters document last, only
// after every build write has been confirmed. Entries are immutable once
// written, so re-writing existing documents is a no-op; a failure before the
// meta write leaves the previous counters intact and the builds keyset a
// superset of what was loaded, which the next run absorbs.
func (s *firestoreStore) Save(ctx context.Context, state *model.LedgerState) error {
	bw := s.client.BulkWriter(ctx)
	jobs := make(map[string]*firestore.BulkWriterJob, len(state.Builds))
	for _, entry := range state.Builds {
		job, err := bw.Set(s.builds().Doc(entry.BuildID), entry)
		if err != nil {
			return goerr.Wrap(err, "failed to queue ledger build write",
				goerr.T(types.ErrTagPersistence),
				goerr.V("build_id", entry.BuildID),
			)
		}
		jobs[entry.BuildID] = job
	}
	bw.End()

	// End only flushes; each write's outcome surfaces through its job.
	for buildID, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write ledger build document",
				goerr.T(types.ErrTagPersistence),
				goerr.V("build_id", buildID),
			)
		}
	}

	meta := firestoreMeta{
		LastCheck:  state.LastCheck,
		CheckCount: state.CheckCount,
	}
	if _, err := s.meta().Set(ctx, meta); err != nil {
		return goerr.Wrap(err, "failed to write ledger meta document",
			goerr.T(types.ErrTagPersistence),
		)
	}

	return nil
}

// Close releases the underlying Firestore client.
func (s *firestoreStore) Close() error {
	return s.client.Close()
}
