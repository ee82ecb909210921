// Package timeutil normalizes the naive wall-clock datetimes supplied by
// the agent runtime into zoned instants, and renders provider event times
// into the fixed display format shown back in conversation.
package timeutil
