// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix é o prefixo das variáveis de ambiente (DRE_AUTH_JWT_SECRET etc.).
const EnvPrefix = "DRE"

// Tipos de fonte e de armazenamento de credenciais.
const (
	SourceGViz        = "gviz"
	SourceWorkbook    = "workbook"
	BackendStatic     = "static"
	BackendFirestore  = "firestore"
	DefaultCollection = "users"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Source SourceConfig `mapstructure:"source"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Layout LayoutConfig `mapstructure:"layout"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

type SourceConfig struct {
	Kind              string        `mapstructure:"kind"`
	BaseURL           string        `mapstructure:"base_url"`
	SpreadsheetID     string        `mapstructure:"spreadsheet_id"`
	WorkbookPath      string        `mapstructure:"workbook_path"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxTries          uint          `mapstructure:"max_tries"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	DateColumn        string        `mapstructure:"date_column"`
}

// AuthConfig descreve o login. Users usa o formato "usuario:senha".
type AuthConfig struct {
	Backend             string   `mapstructure:"backend"`
	Users               []string `mapstructure:"users"`
	JWTSecret           string   `mapstructure:"jwt_secret"`
	CookieName          string   `mapstructure:"cookie_name"`
	CookieSecure        bool     `mapstructure:"cookie_secure"`
	FirestoreProject    string   `mapstructure:"firestore_project"`
	FirestoreDatabase   string   `mapstructure:"firestore_database"`
	FirestoreCollection string   `mapstructure:"firestore_collection"`
}

type LayoutConfig struct {
	CardsPerRow       int `mapstructure:"cards_per_row"`
	SeparatorSkipLast int `mapstructure:"separator_skip_last"`
}

var defaults = map[string]interface{}{
	"server.port":                8080,
	"server.gin_mode":            "release",
	"log.development":            false,
	"source.kind":                SourceGViz,
	"source.base_url":            "https://docs.google.com",
	"source.spreadsheet_id":      "",
	"source.workbook_path":       "",
	"source.timeout":             "10s",
	"source.max_tries":           3,
	"source.requests_per_second": 2.0,
	"source.burst":               4,
	"source.date_column":         "Data",
	"auth.backend":               BackendStatic,
	"auth.users":                 []string{},
	"auth.jwt_secret":            "",
	"auth.cookie_name":           "dre_session",
	"auth.cookie_secure":         false,
	"auth.firestore_project":     "",
	"auth.firestore_database":    "(default)",
	"auth.firestore_collection":  DefaultCollection,
	"layout.cards_per_row":       3,
	"layout.separator_skip_last": 3,
}

// Load lê o .env (se existir), o arquivo de configuração opcional e as variáveis
// DRE_*, nessa ordem de precedência crescente.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("erro ao carregar .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("erro ao ler configuração %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("erro ao interpretar configuração: %w", err)
	}
	return &cfg, validateConfig(&cfg)
}

// UserTable converte Auth.Users em um mapa usuário -> senha.
func (c *Config) UserTable() (map[string]string, error) {
	users := make(map[string]string, len(c.Auth.Users))
	for _, entry := range c.Auth.Users {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		user, pass, ok := strings.Cut(entry, ":")
		if !ok || user == "" || pass == "" {
			return nil, fmt.Errorf("usuário mal formado em auth.users: %q", user)
		}
		users[user] = pass
	}
	return users, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port inválida")
	}
	if err := validateSource(&cfg.Source); err != nil {
		return err
	}
	if err := validateAuth(cfg); err != nil {
		return err
	}
	if cfg.Layout.CardsPerRow <= 0 {
		return errors.New("layout.cards_per_row deve ser positivo")
	}
	return nil
}

func validateSource(src *SourceConfig) error {
	switch src.Kind {
	case SourceGViz:
		if src.SpreadsheetID == "" {
			return errors.New("source.spreadsheet_id é obrigatório para a fonte gviz")
		}
		parsed, err := url.Parse(src.BaseURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("source.base_url inválida: %q", src.BaseURL)
		}
	case SourceWorkbook:
		if src.WorkbookPath == "" {
			return errors.New("source.workbook_path é obrigatório para a fonte workbook")
		}
	default:
		return fmt.Errorf("source.kind desconhecido: %q", src.Kind)
	}
	if src.Timeout <= 0 {
		return errors.New("source.timeout deve ser positivo")
	}
	if src.MaxTries == 0 {
		return errors.New("source.max_tries deve ser ao menos 1")
	}
	if src.RequestsPerSecond <= 0 || src.Burst <= 0 {
		return errors.New("source.requests_per_second e source.burst devem ser positivos")
	}
	if strings.TrimSpace(src.DateColumn) == "" {
		return errors.New("source.date_column é obrigatório")
	}
	return nil
}

func validateAuth(cfg *Config) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret é obrigatório (DRE_AUTH_JWT_SECRET)")
	}
	if cfg.Auth.CookieName == "" {
		return errors.New("auth.cookie_name é obrigatório")
	}
	switch cfg.Auth.Backend {
	case BackendStatic:
		users, err := cfg.UserTable()
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return errors.New("auth.users está vazio (DRE_AUTH_USERS=usuario:senha,...)")
		}
	case BackendFirestore:
		if cfg.Auth.FirestoreProject == "" {
			return errors.New("auth.firestore_project é obrigatório para o backend firestore")
		}
	default:
		return fmt.Errorf("auth.backend desconhecido: %q", cfg.Auth.Backend)
	}
	return nil
}
