// Package domain contains the core business entities for the sitesmith
// generation and editing pipeline. Types here are pure data with no
// dependencies on adapters or external services.
package domain
