package driven

// Prompt names.
const (
	// PromptWrite frames a writing request with the session context.
	// Placeholders: {tree}, {input}, {content_type}.
	PromptWrite = "write"
)

// PromptStore loads user-editable prompt templates.
type PromptStore interface {
	// Load returns the template for the given prompt name.
	Load(name string) (string, error)

	// Reload drops cached templates so the next Load reads from disk.
	Reload()

	// Dir returns the directory holding the template files.
	Dir() string
}
