// herdscout-mcp is an MCP stdio server exposing the herdscout search API as
// tools. It is a thin HTTP client over a running `herdscout serve` instance;
// it owns no browser of its own.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// searchResponse mirrors the herdscout API search response model.
type searchResponse struct {
	Success bool                `json:"success"`
	Kind    string              `json:"kind"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Count   int                 `json:"count"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// locationsResponse mirrors the herdscout API locations response model.
type locationsResponse struct {
	Success bool `json:"success"`
	Options []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"options"`
	Count int `json:"count"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("HERDSCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("HERDSCOUT_API_KEY")

	s := server.NewMCPServer(
		"herdscout",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	searchRanchTool := mcp.NewTool("search_ranch",
		mcp.WithDescription("Search Shorthorn registry ranch/member records by name, city, herd prefix, member id or location. At least one filter is required."),
		mcp.WithString("name", mcp.Description("Ranch or member name; asterisk wildcards allowed")),
		mcp.WithString("city", mcp.Description("City name")),
		mcp.WithString("prefix", mcp.Description("Herd prefix")),
		mcp.WithString("member_id", mcp.Description("Member id")),
		mcp.WithString("location", mcp.Description("State name, two-letter code, or 'Country|ST' value")),
	)
	s.AddTool(searchRanchTool, handleSearch(apiURL, apiKey, "/api/v1/search/ranch",
		[]string{"name", "city", "prefix", "member_id", "location"}))

	searchAnimalTool := mcp.NewTool("search_animal",
		mcp.WithDescription("Search Shorthorn registry animal records by registration number, tattoo, name or EID."),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Search value; asterisk wildcards allowed"),
		),
		mcp.WithString("field",
			mcp.Description("Which attribute to match: registration (default), tattoo, name or eid"),
			mcp.Enum("registration", "tattoo", "name", "eid"),
		),
		mcp.WithString("sex",
			mcp.Description("Restrict to bulls or cows; omit for both"),
			mcp.Enum("bulls", "cows"),
		),
	)
	s.AddTool(searchAnimalTool, handleSearch(apiURL, apiKey, "/api/v1/search/animal",
		[]string{"value", "field", "sex"}))

	searchEPDTool := mcp.NewTool("search_epd",
		mcp.WithDescription("Search Shorthorn registry animals by EPD trait windows. Pass traits as a JSON object keyed by trait (ced, bw, ww, yw, milk, cem, st, yg, cw, rea, fat, marb, cez, bmi, cpi, f) with optional min/max/accuracy strings."),
		mcp.WithObject("traits",
			mcp.Required(),
			mcp.Description(`Trait windows, e.g. {"ww": {"min": "60", "max": "100"}}`),
		),
		mcp.WithString("sort", mcp.Description("Trait to sort results by, e.g. ww")),
		mcp.WithString("sex",
			mcp.Description("Restrict to bulls or cows; omit for both"),
			mcp.Enum("bulls", "cows"),
		),
	)
	s.AddTool(searchEPDTool, handleSearchEPD(apiURL, apiKey))

	listLocationsTool := mcp.NewTool("list_locations",
		mcp.WithDescription("List the registry's current member-location dropdown options (live values, not a fixed list)."),
	)
	s.AddTool(listLocationsTool, handleListLocations(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// handleSearch builds a tool handler that forwards string arguments as a
// JSON body to one of the search endpoints and formats the result table.
func handleSearch(apiURL, apiKey, path string, fields []string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload := map[string]string{}
		for _, f := range fields {
			if v := request.GetString(f, ""); v != "" {
				payload[f] = v
			}
		}
		if len(payload) == 0 {
			return mcp.NewToolResultError("at least one search filter is required"), nil
		}
		return postSearch(ctx, apiURL, apiKey, path, payload)
	}
}

// handleSearchEPD forwards the traits object plus sort/sex to the EPD
// endpoint.
func handleSearchEPD(apiURL, apiKey string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		traits, ok := args["traits"].(map[string]any)
		if !ok || len(traits) == 0 {
			return mcp.NewToolResultError("traits object is required"), nil
		}

		payload := map[string]any{"traits": traits}
		if v := request.GetString("sort", ""); v != "" {
			payload["sort"] = v
		}
		if v := request.GetString("sex", ""); v != "" {
			payload["sex"] = v
		}
		return postSearch(ctx, apiURL, apiKey, "/api/v1/search/epd", payload)
	}
}

// postSearch POSTs a search payload and renders the response rows as text.
func postSearch(ctx context.Context, apiURL, apiKey, path string, payload any) (*mcp.CallToolResult, error) {
	client := &http.Client{Timeout: 180 * time.Second}

	body, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
	}

	var searchResp searchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
	}

	if !searchResp.Success {
		errMsg := "search failed"
		if searchResp.Error != nil {
			errMsg = fmt.Sprintf("[%s] %s", searchResp.Error.Code, searchResp.Error.Message)
		}
		return mcp.NewToolResultError(errMsg), nil
	}

	return mcp.NewToolResultText(formatRows(searchResp)), nil
}

// handleListLocations fetches the live location options.
func handleListLocations(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/api/v1/locations", nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var locResp locationsResponse
		if err := json.Unmarshal(respBody, &locResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !locResp.Success {
			errMsg := "locations lookup failed"
			if locResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", locResp.Error.Code, locResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var b strings.Builder
		for _, o := range locResp.Options {
			fmt.Fprintf(&b, "%s\t%s\n", o.Value, o.Label)
		}
		fmt.Fprintf(&b, "\n%d location(s)", locResp.Count)
		return mcp.NewToolResultText(b.String()), nil
	}
}

// formatRows renders a search response as tab-separated text with a header.
func formatRows(resp searchResponse) string {
	if resp.Count == 0 {
		return "No results found."
	}

	var b strings.Builder
	b.WriteString(strings.Join(resp.Columns, "\t"))
	b.WriteByte('\n')
	for _, row := range resp.Rows {
		vals := make([]string, len(resp.Columns))
		for i, col := range resp.Columns {
			vals[i] = row[col]
		}
		b.WriteString(strings.Join(vals, "\t"))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%d %s result(s)", resp.Count, resp.Kind)
	return b.String()
}
