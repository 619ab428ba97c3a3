package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/masabou247/llm-evaluator/internal/dispatch"
	"github.com/masabou247/llm-evaluator/internal/registry"
)

type queryRequest struct {
	Prompt  string               `json:"prompt"`
	APIKeys registry.Credentials `json:"apiKeys"`
}

type queryResponse struct {
	Responses []dispatch.Result `json:"responses"`
	ElapsedMs int64             `json:"elapsed_ms"`
}

type run struct {
	Sample    string
	Prompt    string
	Responses []dispatch.Result
	ElapsedMs int64
	WallMs    int64
	Error     string
}

func main() {
	url := flag.String("url", "http://localhost:8090", "API base URL")
	envPath := flag.String("env", ".env", "path to a .env file with provider API keys")
	jsonOut := flag.String("json", "", "Write transcripts to JSON file (e.g. transcript.json)")
	width := flag.Int("width", 100, "Wrap responses at this many columns (0 disables wrapping)")
	flag.Parse()

	if err := loadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *envPath, err)
		os.Exit(1)
	}
	creds := credentialsFromEnv()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	names := discoverModels(client, baseURL)

	samples := Samples
	if flag.NArg() > 0 {
		samples = []Sample{{Name: "prompt", Prompt: strings.Join(flag.Args(), " ")}}
	}

	fmt.Printf("Comparing %d models against %s (%d prompts)\n", len(names), baseURL, len(samples))

	var runs []run
	var failures int
	for _, sample := range samples {
		r := compare(client, baseURL, creds, sample)
		runs = append(runs, r)
		printRun(r, names, *width)
		if r.Error != "" {
			failures++
		}
	}

	printSummary(runs)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, runs); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nTranscripts written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func credentialsFromEnv() registry.Credentials {
	return registry.Credentials{
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
		DeepSeek:  os.Getenv("DEEPSEEK_API_KEY"),
		Gemini:    os.Getenv("GEMINI_API_KEY"),
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
	}
}

// discoverModels maps model IDs to display names. Unknown IDs print as-is.
func discoverModels(client *http.Client, baseURL string) map[string]string {
	resp, err := client.Get(baseURL + "/api/models")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching models: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Models endpoint returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	var models []registry.Model
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding models: %v\n", err)
		os.Exit(1)
	}

	names := make(map[string]string, len(models))
	for _, m := range models {
		names[m.ID] = m.Name
	}
	return names
}

func compare(client *http.Client, baseURL string, creds registry.Credentials, sample Sample) run {
	fail := func(err string) run {
		return run{Sample: sample.Name, Prompt: sample.Prompt, Error: err}
	}

	payload, err := json.Marshal(queryRequest{Prompt: sample.Prompt, APIKeys: creds})
	if err != nil {
		return fail(err.Error())
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/llm", strings.NewReader(string(payload)))
	if err != nil {
		return fail(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	wallMs := time.Since(start).Milliseconds()

	if err != nil {
		return fail(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fail(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return fail(err.Error())
	}

	return run{
		Sample:    sample.Name,
		Prompt:    sample.Prompt,
		Responses: qr.Responses,
		ElapsedMs: qr.ElapsedMs,
		WallMs:    wallMs,
	}
}

func printRun(r run, names map[string]string, width int) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Q (%s): %s\n", r.Sample, r.Prompt)
	if r.Error != "" {
		fmt.Printf("ERR: %s\n", r.Error)
		return
	}
	fmt.Printf("     [%dms server, %dms wall]\n", r.ElapsedMs, r.WallMs)

	for _, res := range r.Responses {
		name := names[res.Model]
		if name == "" {
			name = res.Model
		}
		fmt.Printf("\n--- %s ---\n", name)
		if !res.OK() {
			fmt.Printf("ERR: %s\n", res.Error)
			continue
		}
		fmt.Println(wrap(res.Response, width))
	}
}

func printSummary(runs []run) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Println("| Sample | Elapsed (ms) | Wall (ms) | OK | Failed |")
	fmt.Println("|--------|--------------|-----------|----|--------|")
	for _, r := range runs {
		if r.Error != "" {
			fmt.Printf("| %-10s | %12s | %9s | %2s | %6s |\n", r.Sample, "FAIL", "-", "-", "-")
			continue
		}
		ok, failed := tally(r.Responses)
		fmt.Printf("| %-10s | %12d | %9d | %2d | %6d |\n", r.Sample, r.ElapsedMs, r.WallMs, ok, failed)
	}
}

func tally(results []dispatch.Result) (ok, failed int) {
	for _, res := range results {
		if res.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// wrap breaks text at word boundaries so no line exceeds width columns.
// Existing line breaks are kept.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var sb strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		col := 0
		for j, word := range strings.Fields(line) {
			n := len([]rune(word))
			if j > 0 {
				if col+1+n > width {
					sb.WriteByte('\n')
					col = 0
				} else {
					sb.WriteByte(' ')
					col++
				}
			}
			sb.WriteString(word)
			col += n
		}
	}
	return sb.String()
}

// transcripts converts successful runs to the shareable transcript format.
func transcripts(runs []run) []dispatch.Transcript {
	out := make([]dispatch.Transcript, 0, len(runs))
	for _, r := range runs {
		if r.Error != "" {
			continue
		}
		out = append(out, dispatch.NewTranscript(r.Prompt, r.Responses))
	}
	return out
}

func writeJSON(path string, runs []run) error {
	data, err := json.MarshalIndent(transcripts(runs), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
