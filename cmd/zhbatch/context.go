package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"zhbatch/internal/config"
	"zhbatch/internal/convert"
	"zhbatch/internal/history"
	"zhbatch/internal/logging"
	"zhbatch/internal/task"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	dispatcherOnce sync.Once
	dispatcher     *convert.Dispatcher
	dispatcherErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) dispatcherValue() (*convert.Dispatcher, error) {
	c.dispatcherOnce.Do(func() {
		providers, err := convert.NewOpenCC()
		if err != nil {
			c.dispatcherErr = fmt.Errorf("load conversion dictionaries: %w", err)
			return
		}
		c.dispatcher = convert.NewDispatcher(providers)
	})
	return c.dispatcher, c.dispatcherErr
}

func (c *commandContext) newRunner() (*task.Runner, *convert.Dispatcher, error) {
	dispatcher, err := c.dispatcherValue()
	if err != nil {
		return nil, nil, err
	}
	cfg := c.configValue()
	runner := task.NewRunner(dispatcher,
		task.WithLockDir(cfg.LockDir()),
		task.WithLogger(c.loggerValue()),
	)
	return runner, dispatcher, nil
}

func (c *commandContext) vocabulary() (*convert.Vocabulary, error) {
	return convert.LoadVocabulary(c.configValue().Paths.VocabularyFile)
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	store, err := history.Open(c.configValue())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
