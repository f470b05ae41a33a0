package llm

type CustomOpenAI struct {
	*OpenAICompatible
}

// NewCustomOpenAI creates a provider for a self-hosted OpenAI-compatible
// endpoint (vLLM, llama.cpp server, and the like).
func NewCustomOpenAI(baseURL, apiKey, model string) *CustomOpenAI {
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
