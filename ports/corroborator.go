package ports

import "context"

// ClaimsCorroborator turns the requested claim names into asserted claim
// values after a challenge verifies cryptographically. Invoked only on the
// ok path; external data checks (age, credit) plug in here.
type ClaimsCorroborator interface {
	Corroborate(ctx context.Context, did, address string, requested []string) (map[string]interface{}, error)
}
