package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  +91 98765-43210 ", "+919876543210"},
		{"(987) 654 3210", "9876543210"},
		{"98+76", "9876"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecipient(t *testing.T) {
	tests := []struct {
		in, region, want string
	}{
		{"9876543210", "IN", "919876543210"},
		{"+919876543210", "IN", "919876543210"},
		{"+919876543210", "", "919876543210"},
	}
	for _, tt := range tests {
		if got := Recipient(tt.in, tt.region); got != tt.want {
			t.Errorf("Recipient(%q, %q) = %q, want %q", tt.in, tt.region, got, tt.want)
		}
	}
}

func TestSendTemplatePayload(t *testing.T) {
	var gotPath, gotAuth string
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:        srv.URL,
		PhoneNumberID:  "12345",
		Token:          "secret",
		Template:       "bulk_messaging",
		HeaderImageURL: "https://img.test/banner.jpg",
	}, srv.Client())

	if err := c.SendTemplate(context.Background(), "919876543210", "Ravi"); err != nil {
		t.Fatalf("SendTemplate: %v", err)
	}
	if gotPath != "/12345/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q", gotAuth)
	}
	if body["messaging_product"] != "whatsapp" || body["to"] != "919876543210" || body["type"] != "template" {
		t.Errorf("unexpected envelope %v", body)
	}
	tmpl := body["template"].(map[string]interface{})
	if tmpl["name"] != "bulk_messaging" {
		t.Errorf("template name = %v", tmpl["name"])
	}
	if lang := tmpl["language"].(map[string]interface{}); lang["code"] != "en" {
		t.Errorf("language = %v", lang)
	}
	comps := tmpl["components"].([]interface{})
	if len(comps) != 2 {
		t.Fatalf("components = %v", comps)
	}
	bodyParams := comps[1].(map[string]interface{})["parameters"].([]interface{})
	if bodyParams[0].(map[string]interface{})["text"] != "Ravi" {
		t.Errorf("body parameter = %v", bodyParams)
	}
}

func TestSendTemplateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, PhoneNumberID: "1", Template: "t"}, srv.Client())
	err := c.SendTemplate(context.Background(), "919876543210", "there")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
	if got := apiErr.Error(); got != "[100] OAuthException - Invalid parameter" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIErrorDefaults(t *testing.T) {
	if got := (&APIError{}).Error(); got != "[No code] No type - Unknown error" {
		t.Errorf("Error() = %q", got)
	}
}
