// Package identity provides an IdentityExtractor adapter backed by the
// external scraping and vision service.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.IdentityExtractor = (*Client)(nil)

// DefaultTimeout allows for a full scrape and vision pass on the source
// site, which can take a while.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for the identity service client.
type Config struct {
	// BaseURL is the extraction service endpoint, e.g. http://identity.internal.
	BaseURL string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Client calls the extraction service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// extractRequest is the service's /extract request format.
type extractRequest struct {
	URL string `json:"url"`
}

// extractResponse mirrors the service's identity payload.
type extractResponse struct {
	BusinessName string   `json:"businessName"`
	Tagline      string   `json:"tagline"`
	Colors       []string `json:"colors"`
	Services     []string `json:"services"`
	Testimonials []struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	} `json:"testimonials"`
	Contact struct {
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
		Hours   string `json:"hours"`
	} `json:"contact"`
	NavHints []string `json:"navHints"`
	Team     []struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Photo string `json:"photo"`
	} `json:"team"`
	PageCopy string `json:"pageCopy"`
	Logo     string `json:"logo"`
	Images   map[string][]struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	} `json:"images"`
}

// NewClient creates a new identity service client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// Extract returns the identity for a source URL.
func (c *Client) Extract(ctx context.Context, sourceURL string) (*domain.SiteIdentity, error) {
	body, err := json.Marshal(extractRequest{URL: sourceURL})
	if err != nil {
		return nil, fmt.Errorf("marshal extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(data))
	}

	var payload extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}

	return toDomain(&payload), nil
}

// toDomain maps the wire payload onto the domain identity.
func toDomain(p *extractResponse) *domain.SiteIdentity {
	identity := &domain.SiteIdentity{
		BusinessName: p.BusinessName,
		Tagline:      p.Tagline,
		Colors:       p.Colors,
		Services:     p.Services,
		NavHints:     p.NavHints,
		PageCopy:     p.PageCopy,
		Contact: domain.ContactInfo{
			Phone:   p.Contact.Phone,
			Email:   p.Contact.Email,
			Address: p.Contact.Address,
			Hours:   p.Contact.Hours,
		},
		Logo:   domain.ImageRef{URL: p.Logo},
		Images: make(map[domain.ImageRole][]domain.ImageRef),
	}

	for _, t := range p.Testimonials {
		identity.Testimonials = append(identity.Testimonials, domain.Testimonial{
			Quote:  t.Quote,
			Author: t.Author,
		})
	}

	for _, m := range p.Team {
		identity.Team = append(identity.Team, domain.TeamMember{
			Name:  m.Name,
			Role:  m.Role,
			Photo: domain.ImageRef{URL: m.Photo},
		})
	}

	for role, refs := range p.Images {
		for _, ref := range refs {
			identity.Images[domain.ImageRole(role)] = append(identity.Images[domain.ImageRole(role)],
				domain.ImageRef{URL: ref.URL, Alt: ref.Alt})
		}
	}

	return identity
}
