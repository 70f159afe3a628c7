package reconctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

func emailFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "email",
		Aliases:  []string{"e"},
		Usage:    "Account e-mail address",
		Required: true,
		Sources:  cli.EnvVars("RECONCTL_EMAIL"),
	}
}

func passwordFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "password",
		Usage:   "Account password (prompted for when empty)",
		Sources: cli.EnvVars("RECONCTL_PASSWORD"),
	}
}

func password(cmd *cli.Command) (string, error) {
	if pw := cmd.String("password"); pw != "" {
		return pw, nil
	}
	return promptPassword(input(cmd), output(cmd), "Password: ")
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Display name"},
			emailFlag(),
			passwordFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pw, err := password(cmd)
			if err != nil {
				return err
			}

			resp, err := newEnv(cmd).client.Register(ctx, reconsdk.RegisterRequest{
				Username: cmd.String("username"),
				Email:    cmd.String("email"),
				Password: pw,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(output(cmd), "%s: %s <%s>\n", resp.Message, resp.User.Username, resp.User.Email)
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and save the session",
		Flags: []cli.Flag{emailFlag(), passwordFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e := newEnv(cmd)
			out := output(cmd)
			email := cmd.String("email")

			// Refuse before prompting when this device is blocked.
			if err := e.guard.Allow(ctx); err != nil {
				return err
			}

			pw, err := password(cmd)
			if err != nil {
				return err
			}

			session, err := e.client.Login(ctx, email, pw)
			if err != nil {
				var locked *lockout.LockedOutError
				switch {
				case errors.As(err, &locked):
					return fmt.Errorf("%w; run `reconctl status --watch` to follow the countdown", err)
				case errors.Is(err, reconsdk.ErrOTPRequired):
					fmt.Fprintf(out, "A one-time code was sent to %s.\nRun `reconctl verify-otp -e %s <code>` and log in again.\n", email, email)
				}
				return err
			}

			err = saveSession(e.sessionPath, savedSession{
				Server:    e.server,
				Email:     email,
				Token:     session.Token(),
				ExpiresAt: session.ExpiresAt(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Logged in as %s", email)
			if !session.ExpiresAt().IsZero() {
				fmt.Fprintf(out, " until %s", session.ExpiresAt().Local().Format(time.Kitchen))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the saved session",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if err := clearSession(newEnv(cmd).sessionPath); err != nil {
				return err
			}
			fmt.Fprintln(output(cmd), "Logged out")
			return nil
		},
	}
}

func sendOTPCommand() *cli.Command {
	return &cli.Command{
		Name:  "send-otp",
		Usage: "E-mail a one-time code",
		Flags: []cli.Flag{emailFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := newEnv(cmd).client.SendOTP(ctx, cmd.String("email")); err != nil {
				return err
			}
			fmt.Fprintf(output(cmd), "One-time code sent to %s, valid for 10 minutes\n", cmd.String("email"))
			return nil
		},
	}
}

func verifyOTPCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify-otp",
		Usage:     "Check a one-time code",
		ArgsUsage: "<code>",
		Flags:     []cli.Flag{emailFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			code := strings.TrimSpace(cmd.Args().First())
			if code == "" {
				return fmt.Errorf("a code is required")
			}
			if err := newEnv(cmd).client.VerifyOTP(ctx, cmd.String("email"), code); err != nil {
				return err
			}
			fmt.Fprintln(output(cmd), "Code verified")
			return nil
		},
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan a target",
		ArgsUsage: "<url-or-ip>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"t"},
				Value:   reconsdk.CategorySocial,
				Usage:   "One of " + strings.Join(reconsdk.Categories, ", "),
			},
			&cli.BoolFlag{Name: "json", Usage: "Print the full engine payload"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				return fmt.Errorf("a target is required")
			}
			category := cmd.String("category")
			if !domain.ScanCategory(category).Valid() {
				return fmt.Errorf("unknown category %q, want one of %s", category, strings.Join(reconsdk.Categories, ", "))
			}

			session, err := newEnv(cmd).session()
			if err != nil {
				return err
			}

			resp, err := session.SubmitScan(ctx, target, category)
			if err != nil {
				return err
			}

			out := output(cmd)
			if cmd.Bool("json") {
				return printJSON(out, resp.FastAPIResponse)
			}

			rec := resp.SavedScan
			fmt.Fprintln(out, resp.Message)
			fmt.Fprintf(out, "  id:      %s\n", rec.ID)
			fmt.Fprintf(out, "  summary: %s\n", summary(rec))
			return nil
		},
	}
}

func scansCommand() *cli.Command {
	return &cli.Command{
		Name:  "scans",
		Usage: "List saved scans",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "Filter by scan type (active or passive)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"t"}, Usage: "Filter by category"},
			&cli.BoolFlag{Name: "json", Usage: "Print records as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			session, err := newEnv(cmd).session()
			if err != nil {
				return err
			}

			scans, err := session.ListScans(ctx, reconsdk.ScanFilter{
				ScanType:     cmd.String("type"),
				ScanCategory: cmd.String("category"),
			})
			if err != nil {
				return err
			}

			out := output(cmd)
			if cmd.Bool("json") {
				return printJSON(out, scans)
			}
			if len(scans) == 0 {
				fmt.Fprintln(out, "No scans")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tCATEGORY\tTARGET\tSUMMARY")
			for _, s := range scans {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					s.CreatedAt.Local().Format(time.DateTime), s.ScanCategory, s.URLOrIP, summary(s))
			}
			return tw.Flush()
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Show the activity log",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			session, err := newEnv(cmd).session()
			if err != nil {
				return err
			}

			logs, err := session.ListLogs(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(output(cmd), 0, 0, 2, ' ', 0)
			for _, l := range logs {
				fmt.Fprintf(tw, "%s\t%s\n", l.Timestamp.Local().Format(time.DateTime), l.Action)
			}
			return tw.Flush()
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Record an action in the activity log",
				ArgsUsage: "<action>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					action := strings.Join(cmd.Args().Slice(), " ")
					if strings.TrimSpace(action) == "" {
						return fmt.Errorf("an action is required")
					}

					session, err := newEnv(cmd).session()
					if err != nil {
						return err
					}
					entry, err := session.AppendLog(ctx, action)
					if err != nil {
						return err
					}
					fmt.Fprintf(output(cmd), "Logged %q\n", entry.Action)
					return nil
				},
			},
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the saved session and the login lockout of this device",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Count down an active lockout"},
			&cli.DurationFlag{Name: "interval", Value: time.Second, Usage: "Countdown refresh interval"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e := newEnv(cmd)
			out := output(cmd)

			if s, err := loadSession(e.sessionPath); err == nil {
				state := "valid"
				if s.expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(out, "Session: %s on %s (%s)\n", s.Email, s.Server, state)
			} else {
				fmt.Fprintln(out, "Session: none")
			}

			v, err := e.guard.Check(ctx)
			if err != nil {
				return err
			}
			if !v.Blocked {
				fmt.Fprintf(out, "Lockout: none (%d failed attempts)\n", v.State.FailedAttempts)
				return nil
			}
			if !cmd.Bool("watch") {
				fmt.Fprintf(out, "Lockout: blocked for %s\n", v.Remaining.Round(time.Second))
				return nil
			}

			return watchLockout(ctx, e.guard, cmd.Duration("interval"), out)
		},
	}
}

// watchLockout prints the remaining block time until it runs out or ctx
// is cancelled.
func watchLockout(ctx context.Context, g *lockout.Guard, interval time.Duration, out io.Writer) error {
	cd := lockout.StartCountdown(ctx, g, interval, func(remaining time.Duration) {
		if remaining <= 0 {
			fmt.Fprintln(out, "Lockout: expired, you can log in again")
			return
		}
		fmt.Fprintf(out, "Lockout: %s remaining\n", remaining.Round(time.Second))
	})

	select {
	case <-cd.Done():
	case <-ctx.Done():
		cd.Stop()
		return nil
	}
	return cd.Err()
}

// summary describes a saved record in one line.
func summary(rec reconsdk.ScanRecord) string {
	return domain.DecodePayload(domain.ScanCategory(rec.ScanCategory), rec.ScanResults).Summary()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
