// Package cli - командная строка taskify поверх того же стора, что и HTTP API.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/app"
	"github.com/BuzzLyutic/taskify/internal/config"
)

// ErrNotPersisted - мутация применена, но снимок не записан в хранилище
var ErrNotPersisted = errors.New("changes were not saved")

type options struct {
	configPath string
	storage    string
	dataDir    string
	verbose    bool
}

// NewRootCmd собирает дерево команд. Каждый вызов дает независимые флаги.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "taskify",
		Short:         "Taskify - a small task tracker",
		Long:          "Taskify keeps an ordered list of tasks with a title, description and priority.\nEvery change is written through to the configured storage backend.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage backend: file, memory, sqlite, redis, postgres")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory for the file backend")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(addCmd(opts))
	root.AddCommand(listCmd(opts))
	root.AddCommand(showCmd(opts))
	root.AddCommand(editCmd(opts))
	root.AddCommand(toggleCmd(opts))
	root.AddCommand(rmCmd(opts))
	root.AddCommand(moveCmd(opts))
	root.AddCommand(statsCmd(opts))
	root.AddCommand(serveCmd(opts))

	return root
}

// Execute запускает CLI с контекстом процесса
func Execute(ctx context.Context, version string) error {
	return NewRootCmd(version).ExecuteContext(ctx)
}

func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if o.storage != "" {
		cfg.Storage.Backend = o.storage
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	return cfg, nil
}

func (o *options) logger() (*zap.Logger, error) {
	if o.verbose {
		return app.NewLogger("debug", true)
	}
	// без --verbose в stderr попадают только ошибки
	return app.NewLogger("error", false)
}

// withApp открывает приложение на время одной команды
func (o *options) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	logger, err := o.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

// checkPersisted превращает тихую ошибку записи в ошибку команды: после выхода
// из процесса состояние в памяти пропадет.
func checkPersisted(a *app.App) error {
	if msg := a.Store.State().Error; msg != "" {
		return fmt.Errorf("%w: %s", ErrNotPersisted, msg)
	}
	return nil
}
