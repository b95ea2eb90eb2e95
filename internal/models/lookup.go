package models

import "time"

// Lookup represents a single resolved bluetooth device location.
type Lookup struct {
	ID         int         // ID is the unique identifier for the record.
	NetID      string      // NetID is the bluetooth hardware address that was searched.
	Coords     Coordinates // Coords is the resolved coordinate pair.
	LookedUpAt time.Time   // LookedUpAt is when the lookup completed.
}
