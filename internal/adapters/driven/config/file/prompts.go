package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads pipeline prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded
// defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for
// new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptBrandManifest: `You are a brand strategist. Analyse the following facts about a %s business and produce its brand manifest.

Respond with ONLY a JSON object, no markdown fencing and no commentary, matching exactly this shape:
{"businessName":"","tagline":"","primaryColor":"#rrggbb","secondaryColor":"#rrggbb","accentColor":"#rrggbb","fontHeadline":"","fontBody":"","tone":"","services":[{"name":"","description":""}],"heroHeadline":"","heroSubheadline":"","ctaText":"","phone":"","email":"","address":""}

Business facts:
%s`,

	driven.PromptSiteBlueprint: `You are a web designer planning a single-page site for a %s business.

Brand manifest:
%s

Content availability:
%s

Design style must be one of: modern, classic, bold, minimal, elegant, playful.
Section types: hero, services, contact are REQUIRED (services only if the business has services). Optional, only when content supports them: about, testimonials, gallery, faq, team, cta.

Respond with ONLY a JSON object, no markdown fencing and no commentary, matching exactly this shape:
{"designStyle":"modern","sections":[{"id":"hero","type":"hero","priority":1,"contentHints":"","imageNeeded":true}],"navLinks":[{"label":"","href":"#hero"}],"colorScheme":{"primary":"#rrggbb","secondary":"#rrggbb","accent":"#rrggbb","background":"#rrggbb","text":"#rrggbb"}}

Every navLink href referencing an anchor must match a section id. Section ids must be unique.`,

	driven.PromptSection: `You are a web developer writing one self-contained HTML section of a marketing site.

Section type: %s

Brand facts:
%s

Instructions:
%s

Rules:
- Output ONLY the HTML fragment for this one section, no markdown fencing, no commentary, no <html> or <body> wrapper.
- The root element must be <section id="%s">.
- Style with inline CSS and the shared custom properties var(--ss-primary), var(--ss-secondary), var(--ss-accent); translucent overlays may use rgba(var(--ss-primary-rgb), 0.5).
- For entrance animation add class "ss-animate" to animated elements and "ss-delay-1" through "ss-delay-4" to stagger them.
- Where an image belongs, use the exact placeholder token given in the instructions as the src value. Never invent image URLs.`,

	driven.PromptEditSystem: `You are an HTML editor. The user gives you a complete HTML document and an instruction. Make the SMALLEST edit that satisfies the instruction.

Respond in EXACTLY this format:

@@RATIONALE@@
One or two sentences of reasoning.
@@MESSAGE@@
One plain-language sentence telling the user what you changed.
@@EDIT@@
<exact text copied from the document>
@@WITH@@
<the replacement text>
@@END@@

Rules:
- The @@EDIT@@ block must be copied character-for-character from the document, including attribute order and quoting.
- Keep each @@EDIT@@ block as short as possible while staying unique within the document.
- Emit multiple @@EDIT@@ ... @@END@@ blocks for multi-part changes; they are applied in order.
- An empty @@WITH@@ block deletes the searched text.
- NEVER output the whole document.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.sitesmith/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".sitesmith", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Sitesmith Prompts

This directory contains customisable prompts used by the generation and
editing pipeline.

## Files

- ` + "`brand_manifest.txt`" + ` - Compresses extracted business facts into a brand manifest
- ` + "`site_blueprint.txt`" + ` - Plans the section layout and color scheme
- ` + "`section.txt`" + ` - Generates one HTML section fragment
- ` + "`edit_system.txt`" + ` - System prompt for the diff-based edit engine

## Customisation

Edit any file to customise pipeline behaviour. Changes take effect on the
next command, or immediately when a server is running with prompt watching
enabled.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the category or brand facts)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
