package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"

	QRStorageCloudinary = "cloudinary"
	QRStorageSupabase   = "supabase"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	// Storage
	StoreDriver     string `envconfig:"STORE_DRIVER" default:"mongodb"`
	MongoDBURI      string `envconfig:"MONGODB_URI"`
	MongoDBPassword string `envconfig:"MONGODB_PASSWORD"`
	MongoDBDatabase string `envconfig:"MONGODB_DATABASE" default:"enquiry"`
	UsersCollection string `envconfig:"USERS_COLLECTION" default:"Users"`

	// Admin auth
	SupabaseURL       string   `envconfig:"SUPABASE_URL" required:"true"`
	SupabaseAnonKey   string   `envconfig:"SUPABASE_URL_ANON_KEY" required:"true"`
	SupabaseJWTSecret string   `envconfig:"SUPABASE_JWT_SECRET"`
	SessionSecret     string   `envconfig:"SESSION_SECRET" required:"true"`
	AdminEmails       []string `envconfig:"ADMIN_EMAILS"`

	// Links and QR images
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
	QRPDFBaseURL  string `envconfig:"QR_PDF_BASE_URL" default:"https://capturing-tool.vercel.app"`
	QRStorage     string `envconfig:"QR_STORAGE" default:"cloudinary"`
	QRBucket      string `envconfig:"QR_BUCKET" default:"qrcodes"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`

	// Display
	EnquiryType     string `envconfig:"ENQUIRY_TYPE" default:"Packers & Movers"`
	DisplayTimezone string `envconfig:"DISPLAY_TIMEZONE" default:"Asia/Kolkata"`

	WhatsApp WhatsAppConfig `envconfig:"WHATSAPP"`
}

type WhatsAppConfig struct {
	APIURL         string `envconfig:"API_URL" default:"https://graph.facebook.com/v22.0"`
	PhoneNumberID  string `envconfig:"PHONE_NUMBER_ID"`
	Token          string `envconfig:"TOKEN"`
	Template       string `envconfig:"TEMPLATE" default:"bulk_messaging"`
	Language       string `envconfig:"TEMPLATE_LANGUAGE" default:"en"`
	HeaderImageURL string `envconfig:"HEADER_IMAGE_URL"`
	DefaultRegion  string `envconfig:"DEFAULT_REGION" default:"IN"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongoDB:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
		if strings.Contains(c.MongoDBURI, "<password>") && c.MongoDBPassword == "" {
			return fmt.Errorf("MONGODB_PASSWORD is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.QRStorage {
	case QRStorageCloudinary, QRStorageSupabase:
	default:
		return fmt.Errorf("unknown QR_STORAGE %q", c.QRStorage)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Location is the display timezone, UTC when the name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
