package llm

type Ollama struct {
	*OpenAICompatible
}

// NewOllama creates a provider for one model served by an Ollama endpoint
// through its OpenAI-compatible API.
func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
