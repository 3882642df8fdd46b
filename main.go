package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/boardterm/app"
	"github.com/CrestNiraj12/boardterm/infra/auth"
	"github.com/CrestNiraj12/boardterm/infra/board"
	"github.com/CrestNiraj12/boardterm/infra/config"
	"github.com/CrestNiraj12/boardterm/infra/editor"
	"github.com/CrestNiraj12/boardterm/infra/mockapi"
	"github.com/CrestNiraj12/boardterm/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var mock bool
	root := &cobra.Command{
		Use:          "boardterm",
		Short:        "A terminal client for the community board",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), mock)
		},
	}
	root.Flags().BoolVar(&mock, "mock", false, "start the in-memory backend and sign in as the demo user")

	root.AddCommand(newLoginCmd(), newLogoutCmd(), newMockServerCmd(), newVersionCmd())
	return root
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := board.NewClient(cfg.APIURL, auth.StaticToken(""), cfg.Timeout)
			token, err := board.NewSessionService(client).Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := auth.NewFileTokenProvider(cfg.TokenPath).Save(token); err != nil {
				return err
			}
			who := email
			if id, err := auth.Identify(token); err == nil && id.Nickname != "" {
				who = id.Nickname
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", who)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := auth.NewFileTokenProvider(cfg.TokenPath).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newMockServerCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve the in-memory backend with demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Mock.Addr
			}
			srv, err := newMockServer(cfg.Mock)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Printf("demo login: %s / %s", mockapi.DemoEmail, mockapi.DemoPassword)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $BOARDTERM_MOCK_ADDR or :8080)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "boardterm %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		},
	}
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func newMockServer(cfg config.MockConfig) (*mockapi.Server, error) {
	store := mockapi.NewStore()
	if err := mockapi.Seed(store); err != nil {
		return nil, fmt.Errorf("seeding mock data: %w", err)
	}
	return mockapi.NewServer(store, cfg)
}

// startMock runs the backend in-process and signs in as the demo user.
func startMock(ctx context.Context, cfg config.Config) (baseURL, token string, err error) {
	srv, err := newMockServer(cfg.Mock)
	if err != nil {
		return "", "", err
	}
	baseURL, err = srv.StartLocal(ctx)
	if err != nil {
		return "", "", err
	}
	client := board.NewClient(baseURL, auth.StaticToken(""), cfg.Timeout)
	token, err = board.NewSessionService(client).Login(ctx, mockapi.DemoEmail, mockapi.DemoPassword)
	if err != nil {
		return "", "", fmt.Errorf("demo login: %w", err)
	}
	return baseURL, token, nil
}

// identify decodes the saved token for display. Missing or expired tokens
// leave the user anonymous.
func identify(tp auth.TokenProvider, now time.Time) app.Identity {
	token, err := tp.AccessToken()
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			log.Printf("token: %v", err)
		}
		return app.Identity{}
	}
	id, err := auth.Identify(token)
	if err != nil || auth.Expired(id, now) {
		return app.Identity{}
	}
	return id
}

func runTUI(ctx context.Context, mock bool) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("boardterm needs an interactive terminal")
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "boardterm")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 2. Build infrastructure.
	var tokens auth.TokenProvider = auth.NewFileTokenProvider(cfg.TokenPath)
	if mock {
		baseURL, token, err := startMock(ctx, cfg)
		if err != nil {
			return err
		}
		cfg.APIURL = baseURL
		tokens = auth.StaticToken(token)
	}
	client := board.NewClient(cfg.APIURL, tokens, cfg.Timeout)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Printf("ui state: %v", err)
	}

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:     board.NewPostService(client),
		Comments:  board.NewCommentService(client),
		Uploads:   board.NewUploadService(client),
		Composer:  editor.NewEnvEditor(),
		Identity:  identify(tokens, time.Now()),
		UIState:   uiState,
		StatePath: cfg.UIStatePath,
		PageSize:  cfg.PageSize,
		ShareURL:  cfg.ShareURL,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("boardterm: %w", err)
	}
	return nil
}
