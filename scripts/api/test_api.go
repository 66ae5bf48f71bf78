// Minimal end-to-end integration test for the DraftForge API.
// Exercises register, login, models, API key CRUD, content listing and
// logout against a running instance. Generation itself needs a real
// provider key, so it only checks the error path.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var baseURL = getenv("API_URL", "http://localhost:8080")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

var client = &http.Client{Timeout: 15 * time.Second}

func main() {
	username := "smoke-" + uuid.NewString()[:8]
	password := "smoke-test-password"

	token := register(username, password)
	token = login(username, password)
	checkModels()

	keyID := createKey(token)
	listKeys(token, keyID)
	deleteKey(token, keyID)

	generateWithoutKey(token)
	checkContent(token)
	logout(token)

	fmt.Println("all endpoints passed")
}

func register(username, password string) string {
	var resp struct {
		Token string `json:"token"`
	}
	doJSON("POST", "/api/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, &resp, http.StatusCreated)
	if resp.Token == "" {
		log.Fatal("register: empty token")
	}
	return resp.Token
}

func login(username, password string) string {
	var resp struct {
		Token string `json:"token"`
	}
	doJSON("POST", "/api/login", "", map[string]any{
		"username": username,
		"password": password,
	}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("login: empty token")
	}
	return resp.Token
}

func checkModels() {
	var providers []struct {
		Name   string   `json:"name"`
		Models []string `json:"models"`
	}
	doJSON("GET", "/api/models", "", nil, &providers, http.StatusOK)
	if len(providers) == 0 {
		log.Fatal("models: empty catalog")
	}
}

func createKey(token string) float64 {
	var resp struct {
		ID     float64 `json:"id"`
		APIKey string  `json:"apiKey"`
	}
	doJSON("POST", "/api/settings/api-keys", token, map[string]any{
		"provider": "openai",
		"apiKey":   "sk-smoke-test-0000",
	}, &resp, http.StatusOK)
	if resp.APIKey == "sk-smoke-test-0000" {
		log.Fatal("create key: secret echoed unmasked")
	}
	return resp.ID
}

func listKeys(token string, wantID float64) {
	var keys []struct {
		ID       float64 `json:"id"`
		Provider string  `json:"provider"`
	}
	doJSON("GET", "/api/settings/api-keys", token, nil, &keys, http.StatusOK)
	for _, k := range keys {
		if k.ID == wantID && k.Provider == "openai" {
			return
		}
	}
	log.Fatalf("list keys: id %v not found", wantID)
}

func deleteKey(token string, id float64) {
	doJSON("DELETE", fmt.Sprintf("/api/settings/api-keys/%.0f", id), token, nil, nil, http.StatusOK)
}

// generateWithoutKey expects the credential-missing rejection now that the
// stored key is gone.
func generateWithoutKey(token string) {
	doJSON("POST", "/api/generate", token, map[string]any{
		"prompt": "Write a blog post about coffee",
		"model":  "gpt-4",
	}, nil, http.StatusBadRequest)
}

func checkContent(token string) {
	var items []any
	doJSON("GET", "/api/content", token, nil, &items, http.StatusOK)
}

func logout(token string) {
	doJSON("POST", "/api/logout", token, nil, nil, http.StatusOK)
	// Token must be dead now.
	doJSON("GET", "/api/user", token, nil, nil, http.StatusUnauthorized)
}

func doJSON(method, path, token string, body any, out any, wantStatus int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}
