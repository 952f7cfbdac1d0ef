package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en el arranque y se inyecta; los handlers nunca leen el entorno.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Shopify   ShopifyConfig
	Locations LocationsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShopifyConfig credenciales y versión de la Admin API de Shopify.
type ShopifyConfig struct {
	StoreDomain   string // dominio de la tienda (ej. mi-tienda.myshopify.com) para llamadas originadas en el proxy
	AdminToken    string // access token de la Admin API (header X-Shopify-Access-Token)
	APIVersion    string // segmento de versión con fecha, ej. "2026-04"
	WebhookSecret string // secreto compartido para verificar el HMAC de los webhooks
}

// LocationsConfig GIDs de las dos ubicaciones fijas de fulfillment.
// El webhook de pedidos mueve los fulfillment orders hacia una de ellas
// según el note attribute fulfillment_mode.
type LocationsConfig struct {
	Booking   string // gid://shopify/Location/... para fulfillment_mode=booking
	Immediate string // gid://shopify/Location/... para fulfillment_mode=immediate
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SHOPIFY_ADMIN_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "b2b-storefront-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Shopify: ShopifyConfig{
			StoreDomain:   getString(v, "SHOPIFY_STORE_DOMAIN", ""),
			AdminToken:    getString(v, "SHOPIFY_ADMIN_TOKEN", ""),
			APIVersion:    getString(v, "SHOPIFY_API_VERSION", "2026-04"),
			WebhookSecret: getString(v, "SHOPIFY_WEBHOOK_SECRET", ""),
		},
		Locations: LocationsConfig{
			Booking:   getString(v, "FULFILLMENT_LOCATION_BOOKING", ""),
			Immediate: getString(v, "FULFILLMENT_LOCATION_IMMEDIATE", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate exige lo mínimo para operar contra Shopify en entornos no-development.
// En development se permite arrancar sin credenciales (tests, stubs).
func (c *Config) validate() error {
	if c.App.Env == "development" {
		return nil
	}
	if c.Shopify.StoreDomain == "" {
		return fmt.Errorf("config: SHOPIFY_STORE_DOMAIN es requerido en %s", c.App.Env)
	}
	if c.Shopify.AdminToken == "" {
		return fmt.Errorf("config: SHOPIFY_ADMIN_TOKEN es requerido en %s", c.App.Env)
	}
	if c.Shopify.WebhookSecret == "" {
		return fmt.Errorf("config: SHOPIFY_WEBHOOK_SECRET es requerido en %s", c.App.Env)
	}
	// Sin las ubicaciones el webhook ignoraría todos los pedidos en silencio.
	if c.Locations.Booking == "" {
		return fmt.Errorf("config: FULFILLMENT_LOCATION_BOOKING es requerido en %s", c.App.Env)
	}
	if c.Locations.Immediate == "" {
		return fmt.Errorf("config: FULFILLMENT_LOCATION_IMMEDIATE es requerido en %s", c.App.Env)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
