// Package reconctl implements the reconctl command line client.
//
// Settings come from flags, RECONCTL_* environment variables or the TOML
// config file (default ~/.config/reconctl/config.toml):
//
//	[server]
//	url = "https://recon.example.com"
//
//	[state]
//	dir = "~/.config/reconctl"
//
// The state directory holds the saved session (session.toml) and this
// device's login lockout (lockout.toml). While the lockout is active, login
// refuses to contact the server; `reconctl status --watch` counts it down.
package reconctl
