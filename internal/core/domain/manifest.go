package domain

// ServiceEntry pairs a service name with its marketing description.
type ServiceEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BrandManifest is the compact structured brand description derived from a
// SiteIdentity by one model call. It is produced once per generation run and
// never mutated, only superseded by a new run.
type BrandManifest struct {
	BusinessName string `json:"businessName"`
	Tagline      string `json:"tagline"`

	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`

	FontHeadline string `json:"fontHeadline"`
	FontBody     string `json:"fontBody"`

	// Tone is a free-text description of the brand voice.
	Tone string `json:"tone"`

	Services []ServiceEntry `json:"services"`

	HeroHeadline    string `json:"heroHeadline"`
	HeroSubheadline string `json:"heroSubheadline"`
	CTAText         string `json:"ctaText"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}
