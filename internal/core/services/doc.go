// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// DocumentLoader turns files into chunks, SemanticIndex embeds them,
// SearchService builds both indexes and fuses their rankings, and
// SettingsService resolves configuration.
package services
