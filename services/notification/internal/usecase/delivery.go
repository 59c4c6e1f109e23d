package usecase

import "book-notify/services/notification/internal/entity"

// Decision says which delivery paths an event takes.
type Decision struct {
	Store bool
	Push  bool
}

// Suppressed reports whether the event has no visible effect at all.
func (d Decision) Suppressed() bool {
	return !d.Store && !d.Push
}

// Decide applies the preference gate. In-app storage and live push share a
// single gate: master flag AND per-type override.
//
//	master  override  store  push
//	false   any       no     no
//	true    false     no     no
//	true    true      yes    yes
func Decide(prefs entity.Preferences, t entity.NotificationType) Decision {
	allowed := prefs.Allows(t)
	return Decision{Store: allowed, Push: allowed}
}
