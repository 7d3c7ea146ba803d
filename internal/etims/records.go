package etims

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// fetchDoc loads a full record from /api/resource/<doctype>/<name>.
// Payloads for the compliance endpoints are assembled from these fields.
func (c *Client) fetchDoc(doctype, name string) (map[string]interface{}, error) {
	endpoint := url.PathEscape(doctype) + "/" + url.PathEscape(name)
	result, err := c.Request("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	data, ok := result["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("no data found for %s %q", doctype, name)
	}
	return data, nil
}

// listDocs loads record summaries for a doctype.
func (c *Client) listDocs(doctype string, fields []string) ([]map[string]interface{}, error) {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	endpoint := fmt.Sprintf("%s?limit_page_length=0&fields=%s",
		url.PathEscape(doctype), url.QueryEscape(string(fieldsJSON)))
	result, err := c.Request("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var docs []map[string]interface{}
	if data, ok := result["data"].([]interface{}); ok {
		for _, item := range data {
			if m, ok := item.(map[string]interface{}); ok {
				docs = append(docs, m)
			}
		}
	}
	return docs, nil
}

// encodeFilters builds a safe, URL-escaped filters string for list queries.
func encodeFilters(filters [][]interface{}) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}

	encoded, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}

	return url.QueryEscape(string(encoded)), nil
}

func printDoc(doc map[string]interface{}, fields []string) {
	output := map[string]interface{}{}
	for _, field := range fields {
		if v, ok := doc[field]; ok && v != nil && v != "" {
			output[field] = v
		}
	}

	jsonOut, _ := json.MarshalIndent(output, "", "  ")
	fmt.Println(string(jsonOut))
}
