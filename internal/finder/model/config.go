package model

// ================ Config ================
type OracleModelConfig struct {
	Model          string  `default:"gemini-2.5-flash"`
	MaxTokens      int     `split_words:"true" default:"2000"`
	Temperature    float32 `default:"0.1"`
	Timeout        string  `default:"20s"`
	ThinkingBudget int32   `split_words:"true" default:"0"`
}

type PlannerModelConfig struct {
	OracleModelConfig
}

type RankerModelConfig struct {
	OracleModelConfig
}

type CatalogConfig struct {
	APIKey   string `envconfig:"ELEVENLABS_API_KEY"`
	BaseURL  string `envconfig:"CATALOG_BASE_URL" default:"https://api.elevenlabs.io"`
	Timeout  string `envconfig:"CATALOG_TIMEOUT" default:"15s"`
	PageSize int    `envconfig:"CATALOG_PAGE_SIZE" default:"30"`
}

type SessionConfig struct {
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
	TTL     string `envconfig:"SESSION_TTL" default:"0"`
	LockTTL string `envconfig:"SESSION_LOCK_TTL" default:"2m"`
}

type PresenterConfig struct {
	LinkBase        string `envconfig:"PRESENTER_LINK_BASE" default:"https://elevenlabs.io/app/voice-library"`
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"en"`
}

type TransportConfig struct {
	Kind          string `envconfig:"TRANSPORT" default:"http"`
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	SlackBotToken string `envconfig:"SLACK_BOT_TOKEN"`
	SlackAppToken string `envconfig:"SLACK_APP_TOKEN"`
}
