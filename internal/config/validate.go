package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEvaluator(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateQueue(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateEvaluator() error {
	if c.Evaluator.TimeoutSeconds <= 0 {
		return errors.New("evaluator.timeout_seconds must be positive")
	}
	if c.Evaluator.RetryAttempts < 0 {
		return errors.New("evaluator.retry_attempts must not be negative")
	}
	if strings.TrimSpace(c.Evaluator.Model) == "" {
		return errors.New("evaluator.model must be set")
	}
	return nil
}

func (c *Config) validateReview() error {
	if strings.TrimSpace(c.Review.BotName) == "" {
		return errors.New("review.bot_name must be set")
	}
	if c.Review.BatchLimit <= 0 {
		return errors.New("review.batch_limit must be positive")
	}
	if c.Review.ItemDelayMillis < 0 {
		return errors.New("review.item_delay_millis must not be negative")
	}
	if c.Review.DedupWindowDays < 0 {
		return errors.New("review.dedup_window_days must not be negative")
	}
	if c.Review.SimilarityCandidates <= 0 {
		return errors.New("review.similarity_candidates must be positive")
	}
	return nil
}

func (c *Config) validateQueue() error {
	if c.Queue.CleanupDays <= 0 {
		return errors.New("queue.cleanup_days must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
