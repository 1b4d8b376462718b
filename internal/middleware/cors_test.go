package middleware

import (
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{" , ", []string{"*"}},
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example/, https://b.example", []string{"https://a.example", "https://b.example"}},
		{"https://a.example,https://a.example", []string{"https://a.example"}},
		{"https://a.example,*", []string{"*"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := splitOrigins(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("splitOrigins(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewCORS(t *testing.T) {
	app := fiber.New()
	app.Use(NewCORS("https://app.example"))
	app.Get("/api/videos", func(c fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		origin, want string
	}{
		{"https://app.example", "https://app.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/api/videos", nil)
			req.Header.Set("Origin", tt.origin)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}
