package model

// Lap is one recorded split of a running stopwatch.
// DeltaMs is only filled by the anchored stopwatch.
type Lap struct {
	ID      int   `json:"id"`
	AtMs    int64 `json:"atMs"`
	DeltaMs int64 `json:"deltaMs,omitempty"`
}
