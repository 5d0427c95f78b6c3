// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LLMService: the generative model invoked by every pipeline stage
//   - PromptStore: prompt template access
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - IdentityExtractor: external scraping/vision collaborator. Without it,
//     callers must supply raw business facts directly.
//   - ImageGenerator: produces stored assets for the placeholder registry.
//   - AssetStore: durable storage for uploaded images.
//   - DocumentStore: persistence for generated documents.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
