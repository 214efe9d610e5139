package gemini

import "time"

// Config holds execution configuration for one Gemini CLI invocation.
type Config struct {
	Env               map[string]string
	Model             string
	ResumeSessionID   string
	CLIPath           string // Name or path of the CLI binary (default: "gemini")
	Sandbox           bool   // --sandbox flag
	ReturnAllMessages bool   // Retain every raw event in the result
	Timeout           time.Duration // Hard deadline for the whole read stage
	WaitTimeout       time.Duration // Grace window before forced termination
	FlushDelay        time.Duration // Pause after turn.completed before stopping
}

// Option is a functional option for configuring an execution.
type Option func(*Config)

// WithModel sets the model to use. An empty value keeps the CLI default.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithResume resumes a previous conversation by session id. An empty value
// starts a new session.
func WithResume(sessionID string) Option {
	return func(c *Config) {
		c.ResumeSessionID = sessionID
	}
}

// WithSandbox enables the --sandbox flag.
func WithSandbox() Option {
	return func(c *Config) {
		c.Sandbox = true
	}
}

// WithReturnAllMessages retains every raw event in Result.AllMessages.
// Off by default to bound memory.
func WithReturnAllMessages() Option {
	return func(c *Config) {
		c.ReturnAllMessages = true
	}
}

// WithCLIPath sets a custom CLI binary name or path (default: "gemini").
func WithCLIPath(path string) Option {
	return func(c *Config) {
		c.CLIPath = path
	}
}

// WithEnv sets additional environment variables for the CLI process.
func WithEnv(env map[string]string) Option {
	return func(c *Config) {
		c.Env = env
	}
}

// WithTimeout overrides the read-stage deadline (default: 300s).
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithWaitTimeout overrides the graceful shutdown window (default: 5s).
func WithWaitTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WaitTimeout = d
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		CLIPath:     "gemini",
		Timeout:     300 * time.Second,
		WaitTimeout: 5 * time.Second,
		FlushDelay:  300 * time.Millisecond,
	}
}
