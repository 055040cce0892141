package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arkamesh/arka/internal/ledger"
	"github.com/arkamesh/arka/internal/record"
	"github.com/arkamesh/arka/internal/store"
)

// openStore opens the database named by the global --db flag.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	logrus.WithField("db", opts.Database).Debug("opened store")
	return st, nil
}

// resumedClock returns a logical clock resumed from the store's last
// seq, so new records continue the existing order after restart.
func resumedClock(ctx context.Context, st *store.Store) (*ledger.Clock, error) {
	last, err := st.LastSeq(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read last seq", err)
	}
	return ledger.NewClockAt(last), nil
}

// openLedger builds a trust ledger over the store with a resumed clock.
func openLedger(ctx context.Context, st *store.Store) (*ledger.Ledger, error) {
	clock, err := resumedClock(ctx, st)
	if err != nil {
		return nil, err
	}
	return ledger.New(st, ledger.WithClock(clock)), nil
}

// newRecordID generates a time-sortable UUIDv7 record id.
func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// parseNeedItem parses an --item spec of the form "name:qty" or
// "name:qty:unit", e.g. "insulin:2:vials".
func parseNeedItem(spec string) (record.NeedItem, error) {
	name, qty, rest, err := splitItemSpec(spec)
	if err != nil {
		return record.NeedItem{}, err
	}
	return record.NeedItem{Item: name, Quantity: qty, Unit: rest}, nil
}

// parseOfferItem parses an --item spec of the form "name:qty" with
// optional comma-separated dimension flags, e.g.
// "insulin:5:cold_chain,fragile".
func parseOfferItem(spec string) (record.OfferItem, error) {
	name, qty, rest, err := splitItemSpec(spec)
	if err != nil {
		return record.OfferItem{}, err
	}

	item := record.OfferItem{Item: name, Quantity: qty}
	if rest != "" {
		item.Dimensions = make(map[string]bool)
		for _, dim := range strings.Split(rest, ",") {
			dim = strings.TrimSpace(dim)
			if dim != "" {
				item.Dimensions[dim] = true
			}
		}
	}
	return item, nil
}

// splitItemSpec splits "name:qty[:extra]" and parses the quantity.
func splitItemSpec(spec string) (name string, qty int, extra string, err error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return "", 0, "", fmt.Errorf("invalid item spec %q: want name:quantity", spec)
	}

	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", 0, "", fmt.Errorf("invalid item spec %q: empty item name", spec)
	}

	qty, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid item spec %q: bad quantity: %w", spec, err)
	}

	if len(parts) == 3 {
		extra = strings.TrimSpace(parts[2])
	}
	return name, qty, extra, nil
}
