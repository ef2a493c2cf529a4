package config

const (
	defaultDataDir              = "~/.local/share/curator/data"
	defaultLogDir               = "~/.local/share/curator/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultEvaluatorBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultEvaluatorModel       = "google/gemini-3-flash-preview"
	defaultEvaluatorTimeout     = 60
	defaultEvaluatorRetries     = 3
	defaultBotName              = "verification-bot"
	defaultBatchLimit           = 50
	defaultItemDelayMillis      = 500
	defaultDedupWindowDays      = 7
	defaultSimilarityCandidates = 200
	defaultQueueCleanupDays     = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Evaluator: Evaluator{
			BaseURL:        defaultEvaluatorBaseURL,
			Model:          defaultEvaluatorModel,
			TimeoutSeconds: defaultEvaluatorTimeout,
			RetryAttempts:  defaultEvaluatorRetries,
		},
		Review: Review{
			BotName:              defaultBotName,
			BatchLimit:           defaultBatchLimit,
			ItemDelayMillis:      defaultItemDelayMillis,
			DedupWindowDays:      defaultDedupWindowDays,
			SimilarityCandidates: defaultSimilarityCandidates,
		},
		Queue: Queue{
			CleanupDays: defaultQueueCleanupDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
