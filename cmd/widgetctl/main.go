// widgetctl is a CLI tool for exercising the widget API from scripts.
// Each command performs a single request, making it composable:
//
//	widgetctl --shop acme.myshopify.com availability --variant 41
//	widgetctl --shop acme.myshopify.com export --variant 41 > stock.csv
//	widgetctl --shop acme.myshopify.com settings get
//	widgetctl --shop acme.myshopify.com settings set --file edits.json
//
// Data goes to stdout, status lines to stderr. On an error envelope the
// exit code is 1 and the error kind is printed to stderr.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"instock-widget/internal/compat"
)

var client = &http.Client{Timeout: 30 * time.Second}

var (
	apiURL = kingpin.Flag("api", "Widget API base URL.").Default("http://localhost:8080").String()
	shop   = kingpin.Flag("shop", "myshopify domain of the store.").Required().String()
	quiet  = kingpin.Flag("quiet", "Data only, no status lines.").Short('q').Bool()

	availabilityCmd     = kingpin.Command("availability", "Fetch per-location availability for a variant.")
	availabilityVariant = availabilityCmd.Flag("variant", "Numeric product variant id.").Required().String()

	exportCmd     = kingpin.Command("export", "Download per-location availability as CSV.")
	exportVariant = exportCmd.Flag("variant", "Numeric product variant id.").Required().String()

	settingsCmd    = kingpin.Command("settings", "Widget settings operations.")
	settingsGetCmd = settingsCmd.Command("get", "Fetch the resolved widget settings.")
	settingsSetCmd = settingsCmd.Command("set", "Apply settings edits from a JSON file.")
	settingsFile   = settingsSetCmd.Flag("file", "JSON object with setting edits, - for stdin.").Required().String()
)

// ANSI color codes
var (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		colorReset, colorRed, colorGreen, colorGray = "", "", "", ""
	}
}

func main() {
	kingpin.Version(compat.CurrentSchemaVersion)
	kingpin.HelpFlag.Short('h')
	cmd := kingpin.Parse()

	var err error
	switch cmd {
	case availabilityCmd.FullCommand():
		err = runAvailability()
	case exportCmd.FullCommand():
		err = runExport()
	case settingsGetCmd.FullCommand():
		err = runSettingsGet()
	case settingsSetCmd.FullCommand():
		err = runSettingsSet()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s✗ %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func runAvailability() error {
	query := url.Values{"shop": {*shop}, "variant": {*availabilityVariant}}
	data, err := getData("/api/v1/availability?" + query.Encode())
	if err != nil {
		return err
	}

	printSuccess("availability for variant %s", *availabilityVariant)
	return printJSON(data)
}

func runSettingsGet() error {
	query := url.Values{"shop": {*shop}}
	data, err := getData("/api/v1/settings?" + query.Encode())
	if err != nil {
		return err
	}

	printSuccess("settings for %s", *shop)
	return printJSON(data)
}

func runSettingsSet() error {
	edits, err := readEdits(*settingsFile)
	if err != nil {
		return err
	}

	query := url.Values{"shop": {*shop}}
	req, err := newRequest(http.MethodPut, "/api/v1/settings?"+query.Encode(), bytes.NewReader(edits))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := doEnvelope(req)
	if err != nil {
		return err
	}

	printSuccess("settings saved")
	return printJSON(data)
}

// runExport streams the CSV body straight through. Errors still arrive as
// JSON envelopes, recognized by content type.
func runExport() error {
	query := url.Values{"shop": {*shop}, "variant": {*exportVariant}}
	req, err := newRequest(http.MethodGet, "/api/v1/availability/export?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		_, err = parseEnvelope(body)
		return err
	}

	if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
		return fmt.Errorf("streaming CSV: %w", err)
	}
	printSuccess("exported variant %s", *exportVariant)
	return nil
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, *apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(compat.WidgetAgentHeader,
		fmt.Sprintf(`embed="instock-widget", version="%s"`, compat.CurrentSchemaVersion))
	return req, nil
}

func getData(path string) (json.RawMessage, error) {
	req, err := newRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return doEnvelope(req)
}

func doEnvelope(req *http.Request) (json.RawMessage, error) {
	if !*quiet {
		fmt.Fprintf(os.Stderr, "%s→ %s %s%s\n", colorGray, req.Method, req.URL.Path, colorReset)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return parseEnvelope(body)
}

func parseEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if !env.OK {
		if env.Error != nil {
			return nil, fmt.Errorf("%s: %s", env.Error.Kind, env.Error.Message)
		}
		return nil, fmt.Errorf("request rejected")
	}
	return env.Data, nil
}

func readEdits(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading edits: %w", err)
	}

	// Catch shape mistakes before they travel.
	var edits map[string]any
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, fmt.Errorf("edits must be a JSON object: %w", err)
	}
	return data, nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printJSON(data []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}
	fmt.Println(pretty.String())
	return nil
}

func printSuccess(format string, args ...any) {
	if !*quiet {
		fmt.Fprintf(os.Stderr, "%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}
