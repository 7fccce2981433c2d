package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shootdesk/internal/config"
	"shootdesk/internal/logging"
	"shootdesk/internal/services"
	"shootdesk/internal/session"
)

type commandContext struct {
	configFlag  *string
	sessionFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, sessionFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		sessionFlag: sessionFlag,
	}
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

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) sessionID() string {
	if c.sessionFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.sessionFlag)
}

// resolveSession picks the session named by --session, or falls back to the
// most recently updated one.
func (c *commandContext) resolveSession(ctx context.Context, store *session.Store) (*session.Session, error) {
	if id := c.sessionID(); id != "" {
		sess, err := store.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess == nil {
			return nil, services.Wrap(services.ErrNotFound, "cli", "resolve session",
				fmt.Sprintf("session %s does not exist", id), nil)
		}
		return sess, nil
	}
	sess, err := store.LatestSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, services.Wrap(services.ErrNotFound, "cli", "resolve session",
			"no sessions found; create one with `shootdesk session new`", nil)
	}
	return sess, nil
}

// withStore opens the session store, runs fn, and closes the store.
func (c *commandContext) withStore(fn func(*session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withReview loads the active session's review under the session lock, runs
// fn, and saves the review afterwards when fn reports success.
func (c *commandContext) withReview(cmd *cobra.Command, fn func(context.Context, *session.Review, *session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := session.AcquireLock(cfg)
	if err != nil {
		return err
	}
	defer lock.Release()

	return c.withStore(func(store *session.Store) error {
		ctx := cmd.Context()
		sess, err := c.resolveSession(ctx, store)
		if err != nil {
			return err
		}
		ctx = services.WithSessionID(ctx, sess.ID)
		ctx = services.WithShootCode(ctx, sess.ShootCode)

		review, err := store.LoadReview(ctx, sess.ID, c.ensureLogger())
		if err != nil {
			return err
		}
		review.SetDefaultRawExtension(cfg.Naming.DefaultRawExtension)
		if err := fn(ctx, review, store); err != nil {
			return err
		}
		return store.SaveReview(ctx, review)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
