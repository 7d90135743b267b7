package bootstrap

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	journalinadapter "moodlog/internal/modules/journal/adapter/in"
	journaloutadapter "moodlog/internal/modules/journal/adapter/out"
	journalservice "moodlog/internal/modules/journal/service"
	journalusecase "moodlog/internal/modules/journal/usecase"
	reminderinadapter "moodlog/internal/modules/reminder/adapter/in"
	reminderoutadapter "moodlog/internal/modules/reminder/adapter/out"
	reminderservice "moodlog/internal/modules/reminder/service"
	reminderusecase "moodlog/internal/modules/reminder/usecase"
	"moodlog/internal/platform/clock"
	"moodlog/internal/platform/config"
	"moodlog/internal/platform/id"
	"moodlog/internal/platform/logging"
	"moodlog/internal/platform/tx"
	uiapp "moodlog/internal/ui/app"
)

type App struct {
	JournalCLI  journalinadapter.CLIHandler
	ReminderCLI reminderinadapter.CLIHandler
	Logger      *zap.Logger

	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(cfg, clock.SystemClock{}, logger)
}

// NewWithLogger wires the application with an explicit clock and logger.
func NewWithLogger(cfg config.Config, clk clock.Clock, logger *zap.Logger) (*App, error) {
	projector, err := journaloutadapter.NewSQLiteRecordProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record projector: %w", err)
	}

	journalSvc := journalservice.NewJournalService(
		clk,
		journaloutadapter.NewFileSnapshotStore(cfg.DataPath),
		projector,
		logger.Named("journal"),
	)
	journalUC := journalusecase.NewInteractor(
		journalSvc,
		journaloutadapter.NewVaultReportStore(cfg.ReportsDir, id.UUID{}, clk),
		tx.NewSerial(),
		clk,
	)

	reminderUC := reminderusecase.NewInteractor(
		reminderservice.NewReminderService(clk, reminderoutadapter.NewYAMLSettingsStore(cfg.ReminderPath), logger.Named("reminder")),
		journalUC,
	)

	logger.Debug("journal opened", zap.String("path", cfg.JournalPath), zap.String("db", cfg.DBPath))
	return &App{
		JournalCLI:  journalinadapter.NewCLIHandler(journalUC),
		ReminderCLI: reminderinadapter.NewCLIHandler(reminderUC),
		Logger:      logger,
		closers:     []func() error{projector.Close},
	}, nil
}

// Close releases the sqlite handle and flushes the logger.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = a.Logger.Sync()
	return firstErr
}

func RunTUI(journalPath string, app *App) error {
	model := uiapp.NewModel(journalPath, app.JournalCLI, app.ReminderCLI, time.Now)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
