package store

import (
	"context"
	"fmt"

	"github.com/arkamesh/arka/internal/record"
)

// Snapshot is an immutable view of the record sets used by one match
// evaluation. The engine, ranker, and route estimator only ever read a
// snapshot; they never touch the store directly.
type Snapshot struct {
	Needs     []record.NeedRecord
	Offers    []record.OfferRecord
	Logistics []string
}

// ReadSnapshot reads the current needs, offers, and logistics node ids
// in one pass. Each slice carries the store's deterministic ordering,
// so two snapshots of the same data are identical.
func (s *Store) ReadSnapshot(ctx context.Context) (Snapshot, error) {
	needs, err := s.ListNeeds(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	offers, err := s.ListOffers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	logistics, err := s.ListLogisticsNodes(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	return Snapshot{
		Needs:     needs,
		Offers:    offers,
		Logistics: logistics,
	}, nil
}
