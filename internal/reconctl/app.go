package reconctl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// Version is set via ldflags.
var Version = "dev"

// sources chains an environment variable with a key of the TOML config file.
func sources(envKey, tomlKey string, tomlSrc altsrc.Sourcer) cli.ValueSourceChain {
	chain := cli.EnvVars(envKey)
	chain.Chain = append(chain.Chain, toml.TOML(tomlKey, tomlSrc))
	return chain
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".reconctl"
	}
	return filepath.Join(dir, "reconctl")
}

// NewCommand builds the reconctl command tree.
func NewCommand() *cli.Command {
	var configFile string
	tomlSrc := altsrc.NewStringPtrSourcer(&configFile)

	return &cli.Command{
		Name:    "reconctl",
		Usage:   "Command line client for the recon scan service",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Value:       filepath.Join(defaultDir(), "config.toml"),
				Usage:       "Path to configuration file",
				Destination: &configFile,
				Sources:     cli.EnvVars("RECONCTL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "http://localhost:8080",
				Usage:   "recon server URL",
				Sources: sources("RECONCTL_SERVER", "server.url", tomlSrc),
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Value:   defaultDir(),
				Usage:   "Directory for the saved session and lockout state",
				Sources: sources("RECONCTL_STATE_DIR", "state.dir", tomlSrc),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   6 * time.Minute,
				Usage:   "HTTP timeout; active scans can take minutes",
				Sources: sources("RECONCTL_TIMEOUT", "server.timeout", tomlSrc),
			},
		},
		Commands: []*cli.Command{
			registerCommand(),
			loginCommand(),
			logoutCommand(),
			sendOTPCommand(),
			verifyOTPCommand(),
			scanCommand(),
			scansCommand(),
			logsCommand(),
			statusCommand(),
		},
	}
}

// env is what every command needs, resolved from the root flags.
type env struct {
	client      *reconsdk.Client
	guard       *lockout.Guard
	sessionPath string
	server      string
}

func newEnv(cmd *cli.Command) *env {
	dir := expandHome(cmd.String("state-dir"))
	server := strings.TrimSuffix(cmd.String("server"), "/")

	guard := lockout.NewGuard(lockout.DefaultPolicy, &lockout.FileStore{Path: filepath.Join(dir, "lockout.toml")})

	client := reconsdk.NewClient(server)
	client.HTTPClient.Timeout = cmd.Duration("timeout")
	client.Guard = guard

	return &env{
		client:      client,
		guard:       guard,
		sessionPath: filepath.Join(dir, "session.toml"),
		server:      server,
	}
}

// session loads the saved token for the configured server.
func (e *env) session() (*reconsdk.Session, error) {
	s, err := loadSession(e.sessionPath)
	if err != nil {
		return nil, err
	}
	if s.Server != e.server {
		return nil, fmt.Errorf("saved session is for %s, log in to %s first", s.Server, e.server)
	}
	if s.expired(time.Now()) {
		return nil, fmt.Errorf("session expired at %s, log in again", s.ExpiresAt.Local().Format(time.Kitchen))
	}
	return e.client.NewSession(s.Token, s.ExpiresAt), nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func input(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
