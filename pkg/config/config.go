package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	FPBatch FPBatchConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel y archivo opcional de logs.
type LogConfig struct {
	Level string
	File  string
}

// JWTConfig configuración de JWT. Con Secret vacío la API queda sin autenticación (solo desarrollo).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// FPBatchConfig parámetros del conversor XML -> FPBATCH.
type FPBatchConfig struct {
	ParamsPath  string // libro Excel (.xlsx) o YAML con las tablas de parametrización
	Workers     int    // facturas procesadas en paralelo
	MaxUploadMB int    // tamaño máximo del cuerpo en la API
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, FPBATCH_PARAMS_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fpbatch-converter"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
			File:  getString(v, "LOG_FILE", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "fpbatch-converter"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		FPBatch: FPBatchConfig{
			ParamsPath:  getString(v, "FPBATCH_PARAMS_PATH", "parametrizacion_empresas.xlsx"),
			Workers:     getInt(v, "FPBATCH_WORKERS", runtime.NumCPU()),
			MaxUploadMB: getInt(v, "FPBATCH_MAX_UPLOAD_MB", 50),
		},
	}
	if cfg.FPBatch.Workers < 1 {
		cfg.FPBatch.Workers = 1
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
			n, err := strconv.Atoi(v.GetString(key))
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
