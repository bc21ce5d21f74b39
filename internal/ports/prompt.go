package ports

import "context"

// Prompter solicits credentials from the user. Both calls block until input
// arrives or the source is closed; passcodes are short-lived and never
// persisted.
type Prompter interface {
	// Email asks for the account email address.
	Email(ctx context.Context) (string, error)
	// OTP asks for the one-time passcode mailed by the cloud. Returns an
	// empty string when no passcode can be obtained, e.g. closed stdin.
	OTP(ctx context.Context) (string, error)
}
