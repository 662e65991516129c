package descriptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billingDescriptor() *models.ServiceDescriptor {
	return &models.ServiceDescriptor{
		ServiceName: "billing",
		Endpoints: []models.Endpoint{
			{Method: "GET", Path: "/invoices", Description: "List invoices"},
			{Method: "POST", Path: "/invoices", Description: "Create invoice"},
			{Method: "DELETE", Path: "/invoices/{id}", Description: "Delete invoice"},
		},
	}
}

func TestAdjuster_Apply(t *testing.T) {
	tests := []struct {
		name        string
		adjustments *models.DescriptorAdjustments
		want        []models.Endpoint
	}{
		{
			name:        "No adjustments",
			adjustments: &models.DescriptorAdjustments{},
			want:        billingDescriptor().Endpoints,
		},
		{
			name: "Endpoint selection keeps listed methods",
			adjustments: &models.DescriptorAdjustments{
				Services: []models.ServiceAdjustments{{
					Service:   "billing",
					Endpoints: []models.EndpointSelection{{Path: "/invoices", Methods: []string{"get"}}},
				}},
			},
			want: []models.Endpoint{
				{Method: "GET", Path: "/invoices", Description: "List invoices"},
			},
		},
		{
			name: "Selections split across entries for one path",
			adjustments: &models.DescriptorAdjustments{
				Services: []models.ServiceAdjustments{{
					Endpoints: []models.EndpointSelection{
						{Path: "/invoices", Methods: []string{"GET"}},
						{Path: "/invoices", Methods: []string{"POST"}},
					},
				}},
			},
			want: []models.Endpoint{
				{Method: "GET", Path: "/invoices", Description: "List invoices"},
				{Method: "POST", Path: "/invoices", Description: "Create invoice"},
			},
		},
		{
			name: "Description override",
			adjustments: &models.DescriptorAdjustments{
				Services: []models.ServiceAdjustments{{
					Descriptions: []models.EndpointDescription{{
						Path:    "/invoices/{id}",
						Updates: []models.EndpointFieldUpdate{{Method: "DELETE", NewDescription: "Void an invoice"}},
					}},
				}},
			},
			want: []models.Endpoint{
				{Method: "GET", Path: "/invoices", Description: "List invoices"},
				{Method: "POST", Path: "/invoices", Description: "Create invoice"},
				{Method: "DELETE", Path: "/invoices/{id}", Description: "Void an invoice"},
			},
		},
		{
			name: "Other service is untouched",
			adjustments: &models.DescriptorAdjustments{
				Services: []models.ServiceAdjustments{{
					Service:   "users",
					Endpoints: []models.EndpointSelection{{Path: "/users", Methods: []string{"GET"}}},
				}},
			},
			want: billingDescriptor().Endpoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := billingDescriptor()
			(&Adjuster{adjustments: tt.adjustments}).Apply(desc)
			if diff := cmp.Diff(tt.want, desc.Endpoints); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdjuster_NilIsNoop(t *testing.T) {
	var adjuster *Adjuster
	desc := billingDescriptor()
	adjuster.Apply(desc)
	assert.Len(t, desc.Endpoints, 3)
}

func TestAdjuster_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
services:
  - service: billing
    endpoints:
      - path: /invoices
        methods: [GET, POST]
    descriptions:
      - path: /invoices
        updates:
          - method: POST
            new_description: Issue a new invoice
`
	require.NoError(t, afero.WriteFile(fs, "adjustments.yaml", []byte(content), 0o644))
	require.NoError(t, afero.WriteFile(fs, "broken.yaml", []byte("services: [oops"), 0o644))

	t.Run("valid file", func(t *testing.T) {
		adjuster, err := NewAdjusterFromConfig(fs, &config.FetchConfig{Adjustments: "adjustments.yaml"})
		require.NoError(t, err)

		desc := billingDescriptor()
		adjuster.Apply(desc)
		require.Len(t, desc.Endpoints, 2)
		assert.Equal(t, "Issue a new invoice", desc.Endpoints[1].Description)
	})

	t.Run("missing file", func(t *testing.T) {
		adjuster, err := NewAdjusterFromConfig(fs, &config.FetchConfig{Adjustments: "nope.yaml"})
		require.NoError(t, err)

		desc := billingDescriptor()
		adjuster.Apply(desc)
		assert.Len(t, desc.Endpoints, 3)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := NewAdjusterFromConfig(fs, &config.FetchConfig{Adjustments: "broken.yaml"})
		assert.Error(t, err)
	})

	t.Run("no file configured", func(t *testing.T) {
		adjuster, err := NewAdjusterFromConfig(fs, nil)
		require.NoError(t, err)
		assert.NotNil(t, adjuster)
	})
}

func TestFetch_AppliesAdjuster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"serviceName":"billing","endpoints":[`+
			`{"method":"GET","path":"/invoices","description":"List invoices"},`+
			`{"method":"DELETE","path":"/invoices/{id}","description":"Delete invoice"}]}`)
	}))
	t.Cleanup(server.Close)

	adjuster := &Adjuster{adjustments: &models.DescriptorAdjustments{
		Services: []models.ServiceAdjustments{{
			Endpoints: []models.EndpointSelection{{Path: "/invoices", Methods: []string{"GET"}}},
		}},
	}}

	result := newTestFetcher(nil).WithAdjuster(adjuster).Fetch(context.Background(), server.URL)
	require.True(t, result.OK())
	require.Len(t, result.Descriptor.Endpoints, 1)
	assert.Equal(t, "GET /invoices - List invoices", result.Descriptor.Endpoints[0].String())
}
