package goalify

type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID,required"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=1024"`
	Temperature float32 `env:"TEMPERATURE,default=0.2"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

type AppConfig struct {
	ProfilePath     string `env:"PROFILE_PATH,default=artifacts/profile.json"`
	SnapshotPath    string `env:"SNAPSHOT_PATH,default=artifacts/plans.json"`
	JournalPath     string `env:"JOURNAL_PATH,default=artifacts/journal.db"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL,default=gemini-2.5-flash"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#nutrition"`
}
