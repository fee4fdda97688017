// Deployment probe: performs a one-shot GET against /health of a deployed
// instance and exits non-zero unless the reported status is "ok".
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	target := "http://localhost:8080/health"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "probe failed: status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}

	if body.Status != "ok" {
		fmt.Fprintf(os.Stderr, "probe: service reports %q\n", body.Status)
		os.Exit(1)
	}

	fmt.Println("probe: ok")
}
