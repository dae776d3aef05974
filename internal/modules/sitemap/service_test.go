package sitemap

import (
	"context"
	"strings"
	"testing"
	"time"

	"beachride/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVehicles struct {
	vehicles []domain.Vehicle
	err      error
}

func (f *fakeVehicles) GetActive(context.Context) ([]domain.Vehicle, error) {
	return f.vehicles, f.err
}

func TestGenerate(t *testing.T) {
	svc := NewService(&fakeVehicles{vehicles: []domain.Vehicle{
		{Slug: "jet-ski-standard", UpdatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "atv-classic", UpdatedAt: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}}, "https://beachride.example.com/")

	body, err := svc.Generate(context.Background())
	require.NoError(t, err)
	xml := string(body)

	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)

	// static pages
	assert.Contains(t, xml, "<loc>https://beachride.example.com/</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/booking</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/cart</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/faq</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/requirements</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/safety</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/legal</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/login</loc>")

	// one entry per active vehicle with its own lastmod
	assert.Contains(t, xml, "<loc>https://beachride.example.com/vehicles/jet-ski-standard</loc>")
	assert.Contains(t, xml, "<loc>https://beachride.example.com/vehicles/atv-classic</loc>")
	assert.Contains(t, xml, "<lastmod>2026-08-15</lastmod>")

	assert.Equal(t, 10, strings.Count(xml, "<url>"))
}

func TestGenerate_NoVehicles(t *testing.T) {
	svc := NewService(&fakeVehicles{}, "https://beachride.example.com")

	body, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(string(body), "<url>"), "static pages only")
}
