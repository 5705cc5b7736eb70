package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gorilla/sessions"
	"github.com/joshua-takyi/enquiry/internal/config"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/services"
	"github.com/joshua-takyi/enquiry/internal/whatsapp"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Cloudinary     *cloudinary.Cloudinary

	Store          models.DocumentStore
	Sessions       sessions.Store
	TokenValidator *helpers.TokenValidator

	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	BroadcastService    *services.BroadcastService
	AdminService        *services.AdminService
}

// NewContainer wires the services. mongoDBClient is only used with the
// mongodb store driver and cld only when QR images go to Cloudinary.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	cld *cloudinary.Cloudinary,
) *Container {
	var store models.DocumentStore
	if cfg.StoreDriver == config.StoreMemory {
		store = models.NewMemoryStore()
	} else {
		store = models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	}
	gateway := models.NewEnquiryGateway(store)

	var uploader helpers.ImageUploader
	if cfg.QRStorage == config.QRStorageSupabase {
		uploader = helpers.NewSupabaseUploader(supabaseClient, cfg.QRBucket)
	} else {
		uploader = helpers.NewCloudinaryUploader(cld)
	}

	settings := services.Settings{
		PublicBaseURL:   cfg.PublicBaseURL,
		QRPDFBaseURL:    cfg.QRPDFBaseURL,
		EnquiryType:     cfg.EnquiryType,
		UsersCollection: cfg.UsersCollection,
		Location:        cfg.Location(),
	}

	messenger := whatsapp.NewClient(whatsapp.Config{
		BaseURL:        cfg.WhatsApp.APIURL,
		PhoneNumberID:  cfg.WhatsApp.PhoneNumberID,
		Token:          cfg.WhatsApp.Token,
		Template:       cfg.WhatsApp.Template,
		Language:       cfg.WhatsApp.Language,
		HeaderImageURL: cfg.WhatsApp.HeaderImageURL,
	}, nil)

	supa := models.SupabaseNewRepo(supabaseClient)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		Cloudinary:     cld,
		Store:          store,
		Sessions:       helpers.NewSessionStore(cfg.SessionSecret, cfg.IsProduction()),
		TokenValidator: helpers.NewTokenValidator(cfg.SupabaseURL, cfg.SupabaseJWTSecret),

		EventService:        services.NewEventService(gateway, uploader, settings, logger),
		RegistrationService: services.NewRegistrationService(gateway, settings, logger),
		BroadcastService:    services.NewBroadcastService(gateway, messenger, settings, cfg.WhatsApp.DefaultRegion, logger),
		AdminService:        services.NewAdminService(supa),
	}
}

// Close releases background resources held by the container.
func (c *Container) Close() {
	if c.TokenValidator != nil {
		c.TokenValidator.Close()
	}
}
