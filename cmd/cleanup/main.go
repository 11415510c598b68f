package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"casahub-backend/internal/config"
)

// cleanup resets a development installation to a known state: it purges
// volunteer candidates, cases and non-admin users straight from the
// database (the API deliberately exposes no destructive endpoints), then
// replays the bootstrap calls against the running server and reports
// pass/fail per step.

type step struct {
	name string
	run  func() error
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	baseURL := flag.String("base-url", "http://localhost:8080", "Base URL of the running server")
	adminEmail := flag.String("admin-email", "admin@casahub.local", "Super-admin email")
	adminPassword := flag.String("admin-password", "", "Super-admin password")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	c := &client{
		baseURL: *baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	steps := []step{
		{"authenticate as super-admin", func() error {
			return c.login(*adminEmail, *adminPassword)
		}},
		{"purge contact logs and hearings", func() error {
			return execAll(db,
				`DELETE FROM contact_logs`,
				`DELETE FROM hearings`,
			)
		}},
		{"purge cases", func() error {
			return execAll(db, `DELETE FROM cases`)
		}},
		{"purge candidate documents", func() error {
			return execAll(db, `DELETE FROM candidate_documents`)
		}},
		{"purge volunteer candidates", func() error {
			return execAll(db, `DELETE FROM volunteer_candidates`)
		}},
		{"purge notifications", func() error {
			return execAll(db, `DELETE FROM notifications`)
		}},
		{"delete non-admin users", func() error {
			return execAll(db,
				`DELETE FROM memberships WHERE role <> 'ADMIN'`,
				`DELETE FROM users
				 WHERE super_admin = false
				   AND id NOT IN (SELECT user_id FROM memberships WHERE role = 'ADMIN')`,
			)
		}},
		{"verify organizations endpoint", func() error {
			return c.get("/api/v1/organizations")
		}},
		{"create smoke-test organization", func() error {
			return c.post("/api/v1/super-admin/organizations", map[string]interface{}{
				"name":        fmt.Sprintf("Smoke Test CASA %d", time.Now().Unix()),
				"description": "created by the cleanup script",
				"county":      "Test County",
				"admin_email": *adminEmail,
			})
		}},
		{"verify audit log endpoint", func() error {
			return c.get("/api/v1/super-admin/audit-logs?page=1&page_size=1")
		}},
	}

	failed := 0
	for _, s := range steps {
		if err := s.run(); err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", s.name, err)
			continue
		}
		fmt.Printf("PASS  %s\n", s.name)
	}

	fmt.Printf("\n%d/%d steps passed\n", len(steps)-failed, len(steps))
	if failed > 0 {
		os.Exit(1)
	}
}

func execAll(db *sql.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *client) login(email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.http.Post(c.baseURL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.AccessToken == "" {
		return fmt.Errorf("no access token in response")
	}
	c.token = result.AccessToken
	return nil
}

func (c *client) get(path string) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

func (c *client) post(path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) do(req *http.Request) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return nil
}
