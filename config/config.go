// Package config holds initialization parameters for all subsystems as a
// single JSON-serializable aggregate. Loaded files are merged over defaults,
// so a config file only needs the values it changes.
package config

// Backend describes one remote backend endpoint. The API key is resolved
// from the named environment variable at wiring time, never stored in the
// file itself.
type Backend struct {
	Provider  string `json:"provider,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	Voice     string `json:"voice,omitempty"`
}

// Merge applies non-zero values from source into b.
func (b *Backend) Merge(source *Backend) {
	if source.Provider != "" {
		b.Provider = source.Provider
	}
	if source.BaseURL != "" {
		b.BaseURL = source.BaseURL
	}
	if source.Model != "" {
		b.Model = source.Model
	}
	if source.APIKeyEnv != "" {
		b.APIKeyEnv = source.APIKeyEnv
	}
	if source.Voice != "" {
		b.Voice = source.Voice
	}
}

// Confirm holds confirmation gate parameters. Mode and Policy use the gate's
// string names: interactive, auto-execute, dry-run; reinterpret, reprompt.
type Confirm struct {
	Mode   string `json:"mode,omitempty"`
	Policy string `json:"policy,omitempty"`
}

// Merge applies non-zero values from source into c.
func (c *Confirm) Merge(source *Confirm) {
	if source.Mode != "" {
		c.Mode = source.Mode
	}
	if source.Policy != "" {
		c.Policy = source.Policy
	}
}

// Exec holds command execution parameters.
type Exec struct {
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// Merge applies non-zero values from source into e.
func (e *Exec) Merge(source *Exec) {
	if source.TimeoutSeconds > 0 {
		e.TimeoutSeconds = source.TimeoutSeconds
	}
}

// Voice holds voice session parameters.
type Voice struct {
	CaptureSeconds     int    `json:"capture_seconds,omitempty"`
	Device             string `json:"device,omitempty"`
	VerboseTranscripts bool   `json:"verbose_transcripts,omitempty"`
}

// Merge applies non-zero values from source into v. VerboseTranscripts is
// additive: a file can enable it but not disable a default.
func (v *Voice) Merge(source *Voice) {
	if source.CaptureSeconds > 0 {
		v.CaptureSeconds = source.CaptureSeconds
	}
	if source.Device != "" {
		v.Device = source.Device
	}
	if source.VerboseTranscripts {
		v.VerboseTranscripts = true
	}
}

// Config aggregates all subsystem sections. Chat, Transcriber, and Speaker
// name entries in Backends.
type Config struct {
	SystemPrompt  string             `json:"system_prompt,omitempty"`
	CommandPrompt string             `json:"command_prompt,omitempty"`
	Chat          string             `json:"chat,omitempty"`
	Transcriber   string             `json:"transcriber,omitempty"`
	Speaker       string             `json:"speaker,omitempty"`
	Backends      map[string]Backend `json:"backends,omitempty"`
	Confirm       Confirm            `json:"confirm"`
	Exec          Exec               `json:"exec"`
	Voice         Voice              `json:"voice"`
}

const (
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultChatModel      = "gpt-4o-mini"
	defaultWhisperModel   = "whisper-1"
	defaultSpeechModel    = "tts-1"
	defaultAPIKeyEnv      = "OPENAI_API_KEY"
	defaultExecTimeout    = 120
	defaultCaptureSeconds = 6
)

// Default returns a Config with sensible defaults for all sections.
func Default() Config {
	return Config{
		Chat:        "openai-chat",
		Transcriber: "openai-whisper",
		Speaker:     "openai-speech",
		Backends: map[string]Backend{
			"openai-chat": {
				Provider:  "openai",
				BaseURL:   defaultBaseURL,
				Model:     defaultChatModel,
				APIKeyEnv: defaultAPIKeyEnv,
			},
			"openai-whisper": {
				Provider:  "openai",
				BaseURL:   defaultBaseURL,
				Model:     defaultWhisperModel,
				APIKeyEnv: defaultAPIKeyEnv,
			},
			"openai-speech": {
				Provider:  "openai",
				BaseURL:   defaultBaseURL,
				Model:     defaultSpeechModel,
				APIKeyEnv: defaultAPIKeyEnv,
				Voice:     "alloy",
			},
		},
		Confirm: Confirm{Mode: "interactive", Policy: "reinterpret"},
		Exec:    Exec{TimeoutSeconds: defaultExecTimeout},
		Voice:   Voice{CaptureSeconds: defaultCaptureSeconds},
	}
}

// Merge applies non-zero values from source into c, delegating to each
// section's Merge method. Backend entries merge per-name, so a file can
// override a single field of a default backend.
func (c *Config) Merge(source *Config) {
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.CommandPrompt != "" {
		c.CommandPrompt = source.CommandPrompt
	}
	if source.Chat != "" {
		c.Chat = source.Chat
	}
	if source.Transcriber != "" {
		c.Transcriber = source.Transcriber
	}
	if source.Speaker != "" {
		c.Speaker = source.Speaker
	}

	for name, sb := range source.Backends {
		if c.Backends == nil {
			c.Backends = make(map[string]Backend)
		}
		merged := c.Backends[name]
		merged.Merge(&sb)
		c.Backends[name] = merged
	}

	c.Confirm.Merge(&source.Confirm)
	c.Exec.Merge(&source.Exec)
	c.Voice.Merge(&source.Voice)
}
