package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	"github.com/priyaank17/real-estate-ai-assistant/internal/rag"
)

type fakeProjectStore struct {
	projects []estate.Project
	booking  *estate.BookingResult
	err      error

	lastFilters estate.SearchFilters
	lastBooking estate.BookingRequest
}

func (f *fakeProjectStore) SearchProjects(ctx context.Context, filters estate.SearchFilters) ([]estate.Project, error) {
	f.lastFilters = filters
	return f.projects, f.err
}

func (f *fakeProjectStore) ProjectsByNames(ctx context.Context, names []string) ([]estate.Project, error) {
	return f.projects, f.err
}

func (f *fakeProjectStore) ProjectByNameLike(ctx context.Context, name string) (*estate.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.projects) == 0 {
		return nil, fmt.Errorf("not found")
	}
	return &f.projects[0], nil
}

func (f *fakeProjectStore) CityPrices(ctx context.Context, city string) ([]float64, error) {
	prices := make([]float64, 0, len(f.projects))
	for _, p := range f.projects {
		prices = append(prices, p.Price)
	}
	return prices, f.err
}

func (f *fakeProjectStore) BookViewing(ctx context.Context, req estate.BookingRequest) (*estate.BookingResult, error) {
	f.lastBooking = req
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

type fakeSemanticSearcher struct {
	matches []rag.Match
	err     error
}

func (f *fakeSemanticSearcher) Search(ctx context.Context, query string, k int) ([]rag.Match, error) {
	return f.matches, f.err
}

func invokeTool(t *testing.T, bt tool.BaseTool, args any) string {
	t.Helper()
	inv, ok := bt.(tool.InvokableTool)
	require.True(t, ok)

	b, err := json.Marshal(args)
	require.NoError(t, err)

	out, err := inv.InvokableRun(context.Background(), string(b))
	require.NoError(t, err)
	return out
}

func sampleProjects() []estate.Project {
	return []estate.Project{
		{
			ID: uuid.New(), Name: "Marina Pearl", City: "Dubai", Price: 485000,
			Bedrooms: 2, PropertyType: "apartment", Developer: "Emaar", Status: "available",
		},
		{
			ID: uuid.New(), Name: "Palm Crest", City: "Dubai", Price: 2350000,
			Bedrooms: 4, PropertyType: "villa", Developer: "Nakheel", Status: "off_plan",
		},
	}
}

func TestRegistry_QueryTools(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{}, Semantic: &fakeSemanticSearcher{}}
	ts := r.QueryTools()
	require.Len(t, ts, 8)

	infos, err := GetToolInfos(context.Background(), ts)
	require.NoError(t, err)
	require.Len(t, infos, 8)

	names := make(map[string]bool, len(infos))
	for _, info := range infos {
		names[info.Name] = true
	}
	for _, want := range []string{
		ToolExtractIntent, ToolSearchProperties, ToolSearchRAG, ToolUpdateUIContext,
		ToolBookViewing, ToolCompareProjects, ToolAnalyzeInvestment, ToolAreaInfo,
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestSearchPropertiesTool(t *testing.T) {
	store := &fakeProjectStore{projects: sampleProjects()}
	r := &Registry{Projects: store, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createSearchPropertiesTool(), map[string]any{
		"city": "dubai", "price_max": 3000000, "max_results": 5,
	})

	var out SearchPropertiesOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, 2, out.Total)
	assert.Len(t, out.ProjectIDs, 2)
	assert.Contains(t, out.PreviewMarkdown, "Marina Pearl")
	assert.Equal(t, "dubai", store.lastFilters.City)
	assert.Equal(t, 5, store.lastFilters.Limit)
}

func TestSearchPropertiesTool_NoFilters(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{}, Semantic: &fakeSemanticSearcher{}}
	inv := r.createSearchPropertiesTool().(tool.InvokableTool)

	_, err := inv.InvokableRun(context.Background(), `{}`)
	assert.Error(t, err)
}

func TestSearchPropertiesTool_EmptyResultSuggestsRAG(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{}, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createSearchPropertiesTool(), map[string]any{"city": "atlantis"})

	var out SearchPropertiesOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Zero(t, out.Total)
	assert.Contains(t, out.Note, "search_rag")
}

func TestSearchRAGTool(t *testing.T) {
	id := uuid.New()
	r := &Registry{
		Projects: &fakeProjectStore{},
		Semantic: &fakeSemanticSearcher{matches: []rag.Match{
			{ProjectID: id, ProjectName: "Marina Pearl", Content: "Waterfront apartments with sea view.", Distance: 0.182},
		}},
	}

	raw := invokeTool(t, r.createSearchRAGTool(), map[string]any{"query": "sea view near metro"})

	var out SearchRAGOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, 1, out.Total)
	assert.Equal(t, []string{id.String()}, out.ProjectIDs)
	assert.Contains(t, out.Results, "Project: Marina Pearl")
	assert.Contains(t, out.Results, "match distance 0.182")
	assert.Contains(t, out.Results, "Description: Waterfront apartments")
}

func TestBookViewingTool(t *testing.T) {
	bookingID := uuid.New()
	projectID := uuid.New()
	store := &fakeProjectStore{
		booking: &estate.BookingResult{
			Booking: &estate.VisitBooking{ID: bookingID},
			Lead:    &estate.Lead{Email: "john@example.com"},
			Project: &estate.Project{ID: projectID, Name: "Marina Pearl"},
		},
	}
	r := &Registry{Projects: store, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createBookViewingTool(), map[string]any{
		"project_name":   "Marina Pearl",
		"customer_name":  "John Smith",
		"customer_email": "john@example.com",
		"preferred_date": "2026-09-15",
	})

	var out BookViewingOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, bookingID.String(), out.BookingID)
	assert.Equal(t, projectID.String(), out.ProjectID)
	assert.Contains(t, out.Confirmation, "Viewing booked successfully")
	assert.Contains(t, out.Confirmation, "2026-09-15")
	assert.Equal(t, "john@example.com", store.lastBooking.CustomerEmail)
}

func TestCompareProjectsTool(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{projects: sampleProjects()}, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createCompareProjectsTool(), map[string]any{
		"project_names": []string{"Marina Pearl", "Palm Crest"},
	})

	var out CompareProjectsOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, 2, out.Total)
	assert.Contains(t, out.Table, "| Feature | Marina Pearl | Palm Crest |")
}

func TestCompareProjectsTool_NotFound(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{}, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createCompareProjectsTool(), map[string]any{
		"project_names": []string{"Nowhere Towers"},
	})

	var out CompareProjectsOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Zero(t, out.Total)
	assert.Contains(t, out.Table, "couldn't find")
}

func TestAnalyzeInvestmentTool(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{projects: sampleProjects()}, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createAnalyzeInvestmentTool(), map[string]any{"project_name": "Marina Pearl"})

	var out AnalyzeInvestmentOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, "Marina Pearl", out.Analysis.Project)
	assert.Equal(t, 2, out.Analysis.Comparables)
	assert.Contains(t, out.Summary, "Investment Score")
}

func TestExtractIntentTool(t *testing.T) {
	r := &Registry{Projects: &fakeProjectStore{}, Semantic: &fakeSemanticSearcher{}}

	raw := invokeTool(t, r.createExtractIntentTool(), map[string]any{
		"query": "2 bedroom apartment in dubai under 500k",
	})

	var out struct {
		City     string  `json:"city"`
		PriceMax float64 `json:"price_max"`
		Bedrooms int     `json:"bedrooms"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	assert.Equal(t, "dubai", out.City)
	assert.Equal(t, 500000.0, out.PriceMax)
	assert.Equal(t, 2, out.Bedrooms)
}

func TestUpdateUIContextTool(t *testing.T) {
	raw := invokeTool(t, createUpdateUIContextTool(), map[string]any{
		"shortlisted_project_ids": []string{uuid.NewString()},
		"booking_status":          "confirmed",
	})

	var out UpdateUIContextOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, "UI Context Updated.", out.Status)
}

func TestAreaInfoTool(t *testing.T) {
	cases := map[string]string{
		"schools near Marina Pearl": "school",
		"closest hospital":          "Hospital",
		"how is the metro access":   "metro station",
		"anything else":             "developing neighbourhood",
	}

	for query, want := range cases {
		raw := invokeTool(t, createAreaInfoTool(), map[string]any{"query": query})

		var out AreaInfoOutput
		require.NoError(t, json.Unmarshal([]byte(raw), &out))
		assert.Contains(t, out.Answer, want, "query %q", query)
	}
}
