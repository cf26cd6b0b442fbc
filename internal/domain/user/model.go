// Package user tracks per-user bot state: the default city, the conversation
// state machine and the push subscriptions.
package user

import "time"

// States of the per-user conversation machine. Empty means idle.
const (
	StateAwaitingCity = "awaiting_city"
)

// PushKind identifies one scheduled push stream.
type PushKind string

const (
	PushDaily   PushKind = "daily"
	PushWeekend PushKind = "weekend"
	PushTyphoon PushKind = "typhoon"
)

// Profile is one LINE user's stored settings. The zero DefaultCity means the
// user has not picked a city yet.
type Profile struct {
	ID          string // LINE user ID
	DefaultCity string
	State       string
	DailyPush   bool
	WeekendPush bool
	TyphoonPush bool
	// LastTyphoonID dedupes typhoon pushes: one advisory per cyclone.
	LastTyphoonID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subscribed reports whether the profile opted into the given push stream.
func (p Profile) Subscribed(kind PushKind) bool {
	switch kind {
	case PushDaily:
		return p.DailyPush
	case PushWeekend:
		return p.WeekendPush
	case PushTyphoon:
		return p.TyphoonPush
	}
	return false
}
