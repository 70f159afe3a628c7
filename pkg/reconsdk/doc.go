/*
Package reconsdk is the Go client for the recon scan proxy.

# Client and Session

A Client performs the public operations (registration, login, OTP) and
creates Sessions. A Session carries the bearer token returned by Login and
performs the authenticated operations:

	client := reconsdk.NewClient("http://localhost:3000")

	session, err := client.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		return err
	}

	res, err := session.SubmitScan(ctx, "example.com", reconsdk.CategoryCrawl)
	scans, err := session.ListScans(ctx, reconsdk.ScanFilter{ScanCategory: reconsdk.CategoryShodan})

# Login lockout

The server allows three consecutive failed logins per e-mail before refusing
further attempts for five minutes. A Client can enforce the same rule
locally by setting Guard, which persists the state across restarts:

	client.Guard = lockout.NewGuard(lockout.DefaultPolicy, &lockout.FileStore{Path: statePath})

	_, err := client.Login(ctx, email, password)
	var locked *lockout.LockedOutError
	if errors.As(err, &locked) {
		fmt.Printf("try again in %s\n", locked.Remaining)
	}

# One-time codes

When the server requires OTP verification, Login fails with ErrOTPRequired
after the code has been sent:

	_, err := client.Login(ctx, email, password)
	if errors.Is(err, reconsdk.ErrOTPRequired) {
		if err := client.VerifyOTP(ctx, email, code); err != nil {
			return err
		}
		session, err = client.Login(ctx, email, password)
	}

# Errors

Server errors are returned as *APIError and compare equal by code to the
predefined values (ErrUserNotFound, ErrInvalidCredentials, ErrOTPExpired,
ErrUpstreamUnavailable and so on), so errors.Is works across the wire.
*/
package reconsdk
