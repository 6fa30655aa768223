package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Log   LogConfig
	HTTP  HTTPConfig
	Views ViewsConfig
	List  ListConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger.
type LogConfig struct {
	Level string
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

// ViewsConfig parámetros de las vistas de listado.
type ViewsConfig struct {
	File               string          // YAML con vistas adicionales (vacío = ninguna)
	HighValueThreshold decimal.Decimal // umbral de la vista high_value
	RecentDays         int
	ExpiringDays       int
	Placeholders       []string // marcadores de faceta adicionales ("Todos", ...)
}

// ListConfig paginación de listados.
type ListConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, VIEWS_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	threshold, err := getDecimal(v, "VIEWS_HIGH_VALUE_THRESHOLD", decimal.NewFromInt(10000))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "commercial-docs"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Views: ViewsConfig{
			File:               getString(v, "VIEWS_FILE", ""),
			HighValueThreshold: threshold,
			RecentDays:         getInt(v, "VIEWS_RECENT_DAYS", 7),
			ExpiringDays:       getInt(v, "VIEWS_EXPIRING_DAYS", 7),
			Placeholders:       getList(v, "VIEWS_PLACEHOLDERS"),
		},
		List: ListConfig{
			DefaultLimit: getInt(v, "LIST_DEFAULT_LIMIT", 20),
			MaxLimit:     getInt(v, "LIST_MAX_LIMIT", 100),
		},
	}
	if cfg.List.DefaultLimit > cfg.List.MaxLimit {
		return nil, fmt.Errorf("LIST_DEFAULT_LIMIT (%d) mayor que LIST_MAX_LIMIT (%d)", cfg.List.DefaultLimit, cfg.List.MaxLimit)
	}
	return cfg, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDecimal(v *viper.Viper, key string, def decimal.Decimal) (decimal.Decimal, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// getList lista separada por comas; los elementos vacíos se descartan.
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
