package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_URL_ANON_KEY", "anon")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.EnquiryType != "Packers & Movers" || cfg.QRStorage != QRStorageCloudinary {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.WhatsApp.Template != "bulk_messaging" || cfg.WhatsApp.APIURL != "https://graph.facebook.com/v22.0" {
		t.Errorf("unexpected whatsapp defaults %+v", cfg.WhatsApp)
	}
	if cfg.QRPDFBaseURL != "https://capturing-tool.vercel.app" {
		t.Errorf("pdf base url = %q", cfg.QRPDFBaseURL)
	}
}

func TestLoadConfigAdminEmails(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_EMAILS", "a@x.test,b@x.test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "b@x.test" {
		t.Errorf("admin emails = %v", cfg.AdminEmails)
	}
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "mongodb")
	t.Setenv("MONGODB_URI", "")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error without MONGODB_URI")
	}

	t.Setenv("MONGODB_URI", "mongodb+srv://u:<password>@cluster.test")
	t.Setenv("MONGODB_PASSWORD", "")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for password placeholder without MONGODB_PASSWORD")
	}
}

func TestLoadConfigRejectsUnknownDrivers(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown store driver")
	}
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("QR_STORAGE", "s3")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown qr storage")
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{DisplayTimezone: "Nowhere/Invalid"}
	if cfg.Location() != time.UTC {
		t.Error("expected UTC fallback")
	}
}
