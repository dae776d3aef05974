package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"beachride/internal/domain"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

// staticPages are the marketing routes that exist regardless of fleet
// contents.
var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/booking", "weekly", "0.9"},
	{"/cart", "weekly", "0.7"},
	{"/faq", "monthly", "0.6"},
	{"/requirements", "monthly", "0.6"},
	{"/safety", "monthly", "0.6"},
	{"/legal", "yearly", "0.3"},
	{"/login", "monthly", "0.4"},
}

type VehicleLister interface {
	GetActive(ctx context.Context) ([]domain.Vehicle, error)
}

type Service struct {
	vehicles VehicleLister
	baseURL  string
}

func NewService(vehicles VehicleLister, baseURL string) *Service {
	return &Service{vehicles: vehicles, baseURL: strings.TrimRight(baseURL, "/")}
}

// Generate renders the sitemap XML, one entry per static page plus one
// per active vehicle.
func (s *Service) Generate(ctx context.Context) ([]byte, error) {
	set := urlset{Xmlns: xmlns}
	now := time.Now().UTC().Format("2006-01-02")

	for _, p := range staticPages {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        s.baseURL + p.path,
			LastMod:    now,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}

	vehicles, err := s.vehicles.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	for _, v := range vehicles {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        s.baseURL + "/vehicles/" + v.Slug,
			LastMod:    v.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
