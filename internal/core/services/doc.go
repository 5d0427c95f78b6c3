// Package services implements the driving ports: the generation pipeline
// (manifest extraction, blueprint planning, section generation, assembly)
// and the diff-based edit engine.
//
// Services depend only on domain types and driven ports. Model output is
// never trusted: every structured response goes through defensive parsing,
// and stages that can degrade gracefully carry a deterministic fallback.
package services
