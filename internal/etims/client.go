package etims

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Colors for terminal output
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

// Printed after every compliance submission. The server queues the work and
// reports progress through its integration log; the client never interprets
// the business response.
const QueuedMessage = "Request queued on the server. Progress is reported in the eTims integration log."

// Config holds the CLI configuration
type Config struct {
	ETIMSVPN        string
	ETIMSURL        string
	APIKey          string
	APISecret       string
	NginxCookie     string
	NginxCookieName string // Cookie name for reverse proxy auth (default: "auth_cookie")
	Company         string // Default company for list-view actions
	ServerURL       string // KRA eTIMS server URL, used by the server-side ping
	Brand           string // CLI branding shown in TUI (default: "eTims CLI")
}

// Client handles API requests against the Frappe server hosting the eTims app
type Client struct {
	Config     *Config
	HTTPClient *http.Client
	ActiveURL  string
	Mode       string // "vpn" or "internet"

	// Bulk list-view actions are throttled so a run over many records
	// does not flood the server's background queue.
	bulkLimiter *rate.Limiter
}

const bulkCallsPerSecond = 2

// LoadConfig reads the .etims-config file. Values already present in the
// process environment take precedence over the file.
func LoadConfig() (*Config, error) {
	configPaths := []string{
		".etims-config",
		"../.etims-config",
		filepath.Join(filepath.Dir(os.Args[0]), ".etims-config"),
		filepath.Join(filepath.Dir(os.Args[0]), "..", ".etims-config"),
	}

	var configPath string
	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			configPath = p
			break
		}
	}

	values := map[string]string{}
	if configPath != "" {
		fileValues, err := godotenv.Read(configPath)
		if err != nil {
			return nil, fmt.Errorf("cannot parse config %s: %w", configPath, err)
		}
		values = fileValues
	}

	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return values[key]
	}

	config := &Config{
		ETIMSVPN:        get("ETIMS_VPN"),
		ETIMSURL:        get("ETIMS_URL"),
		APIKey:          get("ETIMS_API_KEY"),
		APISecret:       get("ETIMS_API_SECRET"),
		NginxCookie:     get("NGINX_COOKIE"),
		NginxCookieName: get("NGINX_COOKIE_NAME"),
		Company:         get("ETIMS_COMPANY"),
		ServerURL:       get("ETIMS_SERVER_URL"),
		Brand:           get("ETIMS_BRAND"),
	}
	if config.NginxCookieName == "" {
		config.NginxCookieName = "auth_cookie"
	}
	if config.Brand == "" {
		config.Brand = "eTims CLI"
	}

	if config.ETIMSURL == "" || config.APIKey == "" || config.APISecret == "" {
		return nil, fmt.Errorf("missing required config: ETIMS_URL, ETIMS_API_KEY, ETIMS_API_SECRET. Copy .etims-config.example to .etims-config")
	}

	return config, nil
}

// NewClient creates a new API client
func NewClient(config *Config) *Client {
	return &Client{
		Config: config,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		bulkLimiter: rate.NewLimiter(rate.Limit(bulkCallsPerSecond), 1),
	}
}

// DetectConnection tries VPN first, falls back to internet
func (c *Client) DetectConnection() {
	if c.Config.ETIMSVPN != "" {
		req, _ := http.NewRequest("GET", c.Config.ETIMSVPN+"/api/method/frappe.auth.get_logged_user", nil)
		req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.Config.APIKey, c.Config.APISecret))

		client := &http.Client{Timeout: 2 * time.Second}
		resp, err := client.Do(req)
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			c.Mode = "vpn"
			c.ActiveURL = c.Config.ETIMSVPN
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
	}

	c.Mode = "internet"
	c.ActiveURL = c.Config.ETIMSURL
}

func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.Config.APIKey, c.Config.APISecret))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.Mode == "internet" && c.Config.NginxCookie != "" {
		req.AddCookie(&http.Cookie{Name: c.Config.NginxCookieName, Value: c.Config.NginxCookie})
	}
}

// Request makes a record API request against /api/resource
func (c *Client) Request(method, endpoint string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	fullURL := fmt.Sprintf("%s/api/resource/%s", c.ActiveURL, endpoint)
	req, err := http.NewRequest(method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %s", string(respBody))
	}

	if exc, ok := result["exception"]; ok {
		return nil, fmt.Errorf("API error: %v", exc)
	}

	return result, nil
}

// CallMethod invokes a whitelisted server method through /api/method.
//
// Errors are returned only for transport and HTTP-level failures. Business
// outcomes (resultCd, msgprint, Integration Request status) are owned by the
// server and deliberately not parsed here; the decoded body is returned for
// the few query-style endpoints that reply synchronously.
func (c *Client) CallMethod(name string, args map[string]interface{}) (map[string]interface{}, error) {
	jsonBody, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	fullURL := fmt.Sprintf("%s/api/method/%s", c.ActiveURL, name)
	req, err := http.NewRequest("POST", fullURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server returned HTTP %d for %s", resp.StatusCode, name)
	}

	var result map[string]interface{}
	json.Unmarshal(respBody, &result)
	return result, nil
}

// CallMethodThrottled is CallMethod gated by the bulk token bucket.
func (c *Client) CallMethodThrottled(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	if err := c.bulkLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.CallMethod(name, args)
}

// CmdPing tests the connection
func (c *Client) CmdPing() error {
	fmt.Printf("%sTesting connection to the eTims server...%s\n", Blue, Reset)

	c.DetectConnection()

	fullURL := fmt.Sprintf("%s/api/method/frappe.auth.get_logged_user", c.ActiveURL)
	req, _ := http.NewRequest("GET", fullURL, nil)
	c.setAuth(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	json.Unmarshal(body, &result)

	if msg, ok := result["message"].(string); ok && msg != "" {
		fmt.Printf("%s✓ Connection successful%s\n", Green, Reset)
		fmt.Printf("  Authenticated as: %s%s%s\n", Yellow, msg, Reset)
		if c.Mode == "vpn" {
			fmt.Printf("  Mode: %sVPN direct%s (%s)\n", Cyan, Reset, c.ActiveURL)
		} else {
			fmt.Printf("  Mode: %sInternet%s (%s)\n", Yellow, Reset, c.ActiveURL)
		}
		return nil
	}

	return fmt.Errorf("authentication failed: %s", string(body))
}

// CmdEtimsPing asks the Frappe server to check KRA server connectivity
func (c *Client) CmdEtimsPing() error {
	if c.Config.ServerURL == "" {
		return fmt.Errorf("ETIMS_SERVER_URL is not configured")
	}

	fmt.Printf("%sAsking the server to ping %s...%s\n", Blue, c.Config.ServerURL, Reset)

	args, err := requestData(map[string]interface{}{"server_url": c.Config.ServerURL})
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodPingServer, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// CmdConfig shows current configuration
func (c *Client) CmdConfig() error {
	fmt.Printf("%sCurrent configuration:%s\n", Blue, Reset)
	if c.Config.ETIMSVPN != "" {
		fmt.Printf("  VPN URL: %s\n", c.Config.ETIMSVPN)
	} else {
		fmt.Printf("  VPN URL: %snot configured%s\n", Yellow, Reset)
	}
	fmt.Printf("  Internet URL: %s\n", c.Config.ETIMSURL)
	fmt.Printf("  API Key: %s...\n", c.Config.APIKey[:min(8, len(c.Config.APIKey))])
	fmt.Printf("  API Secret: ****\n")

	if c.Config.NginxCookie != "" {
		fmt.Printf("  Nginx Cookie: configured\n")
	} else {
		fmt.Printf("  Nginx Cookie: %snot configured%s (needed for internet mode)\n", Yellow, Reset)
	}

	if c.Config.Company != "" {
		fmt.Printf("  Company: %s\n", c.Config.Company)
	}
	if c.Config.ServerURL != "" {
		fmt.Printf("  eTIMS Server: %s\n", c.Config.ServerURL)
	}

	fmt.Println()
	c.DetectConnection()
	if c.Mode == "vpn" {
		fmt.Printf("  Active mode: %sVPN direct%s\n", Cyan, Reset)
	} else {
		fmt.Printf("  Active mode: %sInternet%s\n", Yellow, Reset)
	}
	fmt.Printf("  Active URL: %s\n", c.ActiveURL)

	return nil
}

func printQueued() {
	fmt.Printf("%s✓ %s%s\n", Green, QueuedMessage, Reset)
}
