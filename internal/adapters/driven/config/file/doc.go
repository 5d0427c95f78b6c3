// Package file provides file-based implementations of driven port
// interfaces. These adapters persist data to the local filesystem under
// the sitesmith config directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: editable prompt templates with hot reload
package file
