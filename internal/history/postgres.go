package history

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/wiglebt/internal/models"
)

// SaveLookup records one successful resolution. The caller decides whether a
// failure here matters; the lookup result itself is already in hand.
func (r *Repository) SaveLookup(ctx context.Context, netid string, coords models.Coordinates) error {
	query := `
		INSERT INTO bluetooth_lookups (netid, latitude, longitude, looked_up_at)
		VALUES ($1, $2, $3, NOW());
	`

	_, err := r.db.Exec(ctx, query, netid, coords.Latitude, coords.Longitude)
	if err != nil {
		return fmt.Errorf("failed to insert lookup record: %w", err)
	}

	r.log.DebugContext(ctx, "Recorded bluetooth lookup",
		"netid", netid, "lat", coords.Latitude, "lon", coords.Longitude)

	return nil
}

// RecentLookups retrieves the newest recorded lookups, most recent first,
// limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of records to retrieve.
//
// Returns:
// - A slice of models.Lookup ordered by lookup time, newest first.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error) {
	var lookups []models.Lookup
	query := `
		SELECT id, netid, latitude, longitude, looked_up_at
		FROM bluetooth_lookups
		ORDER BY looked_up_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent lookups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lookup models.Lookup
		if errScan := rows.Scan(
			&lookup.ID,
			&lookup.NetID,
			&lookup.Coords.Latitude,
			&lookup.Coords.Longitude,
			&lookup.LookedUpAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan lookup record: %w", errScan)
		}
		lookups = append(lookups, lookup)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return lookups, nil
}
