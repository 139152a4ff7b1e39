package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/halftone/sketchpath/ent"
	"github.com/halftone/sketchpath/ent/snapshot"
	"github.com/halftone/sketchpath/internal/progress"
)

// ProgressRepo persists progress snapshots, implementing progress.Repo.
// Every save appends a new snapshot; Load reads the most recent one, so a
// corrupted or interrupted write never destroys the previous state.
type ProgressRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *ProgressRepo) Save(ctx context.Context, data *progress.Data) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	dataMap, err := toMap(data)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	_, err = r.client.Snapshot.Create().
		SetSequence(seqNum).
		SetTimestamp(time.Now().UTC()).
		SetData(dataMap).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save progress snapshot: %w", err)
	}
	return nil
}

func (r *ProgressRepo) Load(ctx context.Context) (*progress.Data, error) {
	s, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldSequence)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var data progress.Data
	if err := fromMap(s.Data, &data); err != nil {
		return nil, fmt.Errorf("unmarshal progress snapshot: %w", err)
	}
	return &data, nil
}

// Prune deletes all but the keep most recent snapshots.
func (r *ProgressRepo) Prune(ctx context.Context, keep int) error {
	old, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldSequence)).
		Offset(keep).
		Limit(1).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(old) == 0 {
		return nil
	}

	_, err = r.client.Snapshot.Delete().
		Where(snapshot.SequenceLTE(old[0].Sequence)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Reset drops all stored snapshots, returning the learner to a fresh
// profile on the next load.
func (r *ProgressRepo) Reset(ctx context.Context) error {
	if _, err := r.client.Snapshot.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// toMap converts a JSON-serializable value to map[string]any for ent JSON
// storage.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap is the inverse of toMap.
func fromMap(m map[string]any, out any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
