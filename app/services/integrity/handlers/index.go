package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// index serves the dashboard page.
func index(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	page, err := os.Open("app/services/integrity/assets/views/index.html")
	if err != nil {
		return fmt.Errorf("open index page: %w", err)
	}
	defer page.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, page)

	return nil
}
