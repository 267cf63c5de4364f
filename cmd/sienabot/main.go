package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/crodriguez/sienabot/internal/bot"
	"github.com/crodriguez/sienabot/internal/config"
	"github.com/crodriguez/sienabot/internal/logger"
	"github.com/crodriguez/sienabot/internal/state"
	"github.com/crodriguez/sienabot/internal/telegram"
	"github.com/crodriguez/sienabot/internal/tools"
	"github.com/crodriguez/sienabot/internal/version"
)

func provideConfig() (config.Config, error) {
	// Token and admin chat often live in .env during development.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("SIENABOT_CONFIG"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideStore(log *slog.Logger, cfg config.Config) (*state.Store, error) {
	return state.NewStore(log, cfg.Bot.DataDir)
}

func provideToolClient(log *slog.Logger, cfg config.Config) (*tools.Client, error) {
	return tools.NewClient(log, cfg.Tools.BaseURL, cfg.Tools.Timeout())
}

func provideTransport(log *slog.Logger, cfg config.Config) (*telegram.Transport, error) {
	return telegram.New(log, cfg.Telegram.Token)
}

func provideBot(
	log *slog.Logger,
	cfg config.Config,
	store *state.Store,
	transport *telegram.Transport,
	chat *tools.ChatClient,
	vision *tools.VisionClient,
	audio *tools.AudioClient,
	knowledge *tools.KnowledgeClient,
	search *tools.SearchClient,
	diag *tools.DiagnosticsClient,
	sandbox *tools.SandboxClient,
	notes *tools.NotesClient,
	resources *tools.ResourcesClient,
) *bot.Bot {
	return bot.New(log, cfg, store, bot.Deps{
		Transport:   transport,
		Chat:        chat,
		Vision:      vision,
		Audio:       audio,
		Knowledge:   knowledge,
		Search:      search,
		Diagnostics: diag,
		Sandbox:     sandbox,
		Notes:       notes,
		Resources:   resources,
	})
}

func runBot(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *slog.Logger, b *bot.Bot) {
	loopCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("sienabot starting", slog.String("version", version.GetInfo()))
			go func() {
				if err := b.Run(loopCtx); err != nil {
					log.Error("dispatch loop exited", slog.Any("error", err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func main() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideStore,
			provideToolClient,
			provideTransport,

			tools.NewChatClient,
			tools.NewVisionClient,
			tools.NewAudioClient,
			tools.NewKnowledgeClient,
			tools.NewSearchClient,
			tools.NewDiagnosticsClient,
			tools.NewSandboxClient,
			tools.NewNotesClient,
			tools.NewResourcesClient,

			provideBot,
		),
		fx.Invoke(
			runBot,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}
