package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Loads campaign fixture files into a running server. Each *.json file in the
// fixtures directory holds an array of create-campaign requests.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <load|status> [fixtures-dir]")
	}

	command := os.Args[1]
	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 10 * time.Second}

	switch command {
	case "load":
		fixturesDir := "fixtures"
		if len(os.Args) > 2 {
			fixturesDir = os.Args[2]
		}
		if err := loadFixtures(client, serverURL, fixturesDir); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Println("Fixtures loaded successfully!")
	case "status":
		resp, err := client.Get(serverURL + "/health")
		if err != nil {
			log.Fatalf("Server unreachable: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Fatalf("Server unhealthy: %s", resp.Status)
		}
		fmt.Println("Server connection successful!")
	default:
		log.Fatal("Unknown command. Use 'load' or 'status'")
	}
}

type campaignFixture struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Goal        string `json:"goal"`
	Deadline    int64  `json:"deadline"`
	DaysLeft    int64  `json:"days_left,omitempty"` // convenience: deadline relative to now
}

func loadFixtures(client *http.Client, serverURL, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to read fixtures directory: %w", err)
	}

	for _, file := range files {
		fmt.Printf("Loading fixture: %s\n", file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read fixture file %s: %w", file, err)
		}
		var fixtures []campaignFixture
		if err := json.Unmarshal(content, &fixtures); err != nil {
			return fmt.Errorf("failed to parse fixture file %s: %w", file, err)
		}

		for _, f := range fixtures {
			if f.Deadline == 0 && f.DaysLeft > 0 {
				f.Deadline = time.Now().Unix() + f.DaysLeft*86400
			}
			body, _ := json.Marshal(f)
			resp, err := client.Post(serverURL+"/api/v1/campaigns", "application/json", bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("failed to create campaign %q: %w", f.Title, err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				return fmt.Errorf("failed to create campaign %q: %s", f.Title, resp.Status)
			}
		}
	}
	return nil
}
