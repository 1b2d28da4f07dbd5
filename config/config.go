package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Slot store. STORE_BACKEND is one of "redis", "mongo", "memory" or empty for auto.
	StoreBackend     string `mapstructure:"STORE_BACKEND"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int    `mapstructure:"REDIS_DB"`
	RedisBookingsKey string `mapstructure:"REDIS_BOOKINGS_KEY"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	MongoDatabase    string `mapstructure:"MONGO_DATABASE"`

	// Notification transport.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	AdminEmail   string `mapstructure:"ADMIN_EMAIL"`
	StudioName   string `mapstructure:"STUDIO_NAME"`

	// Submissions.
	MaxAttachmentBytes int64 `mapstructure:"MAX_ATTACHMENT_BYTES"`
	StrictSlotFormat   bool  `mapstructure:"STRICT_SLOT_FORMAT"`

	// Admin mode. The passphrase hash is bcrypt.
	AdminPassphraseHash string `mapstructure:"ADMIN_PASSPHRASE_HASH"`
	JWTSecret           string `mapstructure:"JWT_SECRET"`
	RequireAdminToggle  bool   `mapstructure:"REQUIRE_ADMIN_TOGGLE"`

	// Cloudinary archive for reference images. Either CLOUDINARY_URL or the three parts.
	CloudinaryURL       string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

var AppConfig Config

// DefaultMaxAttachmentBytes is the attachment ceiling when none is configured (5 MiB).
const DefaultMaxAttachmentBytes = 5 << 20

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers default values on v. Every key needs a default so
// AutomaticEnv picks it up during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_BACKEND", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_BOOKINGS_KEY", "bookings")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MONGO_DATABASE", "inkbook")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("MAIL_FROM", "Tattoo Portfolio <onboarding@resend.dev>")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("STUDIO_NAME", "Tattoo Portfolio")
	v.SetDefault("MAX_ATTACHMENT_BYTES", DefaultMaxAttachmentBytes)
	v.SetDefault("STRICT_SLOT_FORMAT", false)
	v.SetDefault("ADMIN_PASSPHRASE_HASH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REQUIRE_ADMIN_TOGGLE", false)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "booking-references")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// StoreConfig selects and parameterizes the slot store backend.
type StoreConfig struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BookingsKey   string
	MongoURI      string
	MongoDatabase string
}

// Store derives the slot store settings from c. An empty backend resolves to
// redis when a Redis address is set, mongo when a database URL is set, and
// memory otherwise.
func (c Config) Store() StoreConfig {
	backend := strings.ToLower(strings.TrimSpace(c.StoreBackend))
	if backend == "" {
		switch {
		case c.RedisAddr != "":
			backend = "redis"
		case c.DatabaseURL != "":
			backend = "mongo"
		default:
			backend = "memory"
		}
	}
	return StoreConfig{
		Backend:       backend,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		BookingsKey:   c.RedisBookingsKey,
		MongoURI:      c.DatabaseURL,
		MongoDatabase: c.MongoDatabase,
	}
}
