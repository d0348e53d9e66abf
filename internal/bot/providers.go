package bot

// Backend keys match the inference client map held by the Bot
const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
)

// Provider is a selectable inference backend + model pair.
// The list is immutable configuration, safe for concurrent reads.
type Provider struct {
	ID      string
	Name    string
	Backend string
	Model   string
}

var providers = []Provider{
	{ID: "flux", Name: "Hugging Face • FLUX.1 Schnell", Backend: BackendHuggingFace, Model: "black-forest-labs/FLUX.1-schnell"},
	{ID: "sdxl", Name: "Hugging Face • SDXL", Backend: BackendHuggingFace, Model: "stabilityai/stable-diffusion-xl-base-1.0"},
	{ID: "dalle3", Name: "OpenAI • DALL·E 3", Backend: BackendOpenAI, Model: "dall-e-3"},
}

// defaultProvider is substituted when a generation is requested before
// a provider was picked
var defaultProvider = providers[0]

func providerByID(id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
