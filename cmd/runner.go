package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/formatter"
	"github.com/desertthunder/jbx/internal/repositories"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *services.JukeboxClient
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *services.JukeboxClient
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = services.NewJukeboxClient(opts.Config.Server.BaseURL, nil)
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger, e.g. to a file logger for TUI runs.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, queueCommand, searchCommand, sessionCommand, adminCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveSession returns the raw session reference for a command: the
// --session flag when set, otherwise the configured default.
func (r *Runner) resolveSession(cmd *cli.Command) string {
	if raw := cmd.String("session"); raw != "" {
		return raw
	}
	return r.config.Session.Default
}

// scoped establishes the session scope for a command and returns the
// service to use. A nil session context means global mode. Token fetch
// failure aborts the command; falling back to global mode would act on
// the wrong queue.
func (r *Runner) scoped(ctx context.Context, cmd *cli.Command) (services.Service, *session.Context, error) {
	raw := r.resolveSession(cmd)
	if raw == "" {
		return r.client, nil, nil
	}

	id := session.DetectSessionID(raw)
	if id == "" {
		return nil, nil, fmt.Errorf("%w: %q does not reference a session", shared.ErrInvalidArgument, raw)
	}

	sctx, err := session.Establish(ctx, r.client, id, r.logger)
	if err != nil {
		return nil, nil, err
	}

	return r.client.WithSession(ctx, sctx.ID, sctx.Token), sctx, nil
}

// openStore opens the participant database. The caller closes the db.
func (r *Runner) openStore() (*sql.DB, *repositories.ParticipantRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, repositories.NewParticipantRepository(db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := formatter.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
