package tools

import "context"

// WebResult is one ranked web search hit.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// PartResult is one marketplace listing for an automotive part.
type PartResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SearchClient performs web research, page scraping, and regional part
// marketplace searches.
type SearchClient struct {
	client *Client
}

// NewSearchClient wraps a tool client for search calls.
func NewSearchClient(client *Client) *SearchClient {
	return &SearchClient{client: client}
}

// Web runs a keyword web search and returns ranked results.
func (c *SearchClient) Web(ctx context.Context, query string) ([]WebResult, error) {
	req := struct {
		Query string `json:"query"`
	}{Query: query}

	var resp struct {
		envelope
		Results []WebResult `json:"results"`
	}
	if err := c.client.call(ctx, "search.web", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Scrape fetches one page and returns its extracted text content.
func (c *SearchClient) Scrape(ctx context.Context, url string) (string, error) {
	req := struct {
		URL string `json:"url"`
	}{URL: url}

	var resp struct {
		envelope
		Content string `json:"content"`
	}
	if err := c.client.call(ctx, "scrape.page", req, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Parts searches the regional marketplace for a part.
func (c *SearchClient) Parts(ctx context.Context, part, region string) ([]PartResult, error) {
	req := struct {
		Part   string `json:"part"`
		Region string `json:"region"`
	}{Part: part, Region: region}

	var resp struct {
		envelope
		Results []PartResult `json:"results"`
	}
	if err := c.client.call(ctx, "search.parts", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
