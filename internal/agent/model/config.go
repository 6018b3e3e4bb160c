package model

// ================ Config ================
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"15m"`
	NLU struct {
		MaxTurns int `envconfig:"CONVERSATION_NLU_MAX_TURNS" default:"5"`
	}
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type NLUModelConfig struct {
	Model            string  `envconfig:"NLU_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens        int     `envconfig:"NLU_MAX_TOKENS" default:"2000"`
	Temperature      float32 `envconfig:"NLU_TEMPERATURE" default:"0.1"`
	DefaultIntent    string  `envconfig:"NLU_DEFAULT_INTENT" default:"greet:0.1, search_property:0.8, ask_detail:0.7, book_visit:0.9, compare_projects:0.6, analyze_investment:0.6"`
	AdditionalIntent string  `envconfig:"NLU_ADDITIONAL_INTENT" default:"ask_price:0.6, ask_area_info:0.4, off_topic:0.1, complain:0.5"`
	DefaultEntity    string  `envconfig:"NLU_DEFAULT_ENTITY" default:"city, budget, bedrooms, property_type, project, developer"`
	AdditionalEntity string  `envconfig:"NLU_ADDITIONAL_ENTITY" default:"feature, currency, date, lead_name, lead_email"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type ResponsePromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"real estate brokerage"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Silver Land Properties"`
}

type EmbeddingConfig struct {
	Model string `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
}
