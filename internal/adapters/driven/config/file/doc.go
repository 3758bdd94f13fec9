// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML settings under ~/.docscribe/config.toml
//   - PromptStore: user-editable prompt templates under ~/.docscribe/prompts
package file
