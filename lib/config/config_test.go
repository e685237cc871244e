package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("MONOLOG_DB_DSN", "user:pw@tcp(localhost:3306)/wordpress")
	t.Setenv("MONOLOG_PER_PAGE", "25")
	t.Setenv("MONOLOG_TIMEZONE", "Europe/London")
	t.Setenv("MONOLOG_LOG_LEVEL", "debug")

	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	c, err := LoadServerConfig(v)
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}

	if c.DSN != "user:pw@tcp(localhost:3306)/wordpress" {
		t.Errorf("DSN = %q", c.DSN)
	}
	if c.TablePrefix != "wp_" || c.ListenAddr != ":8080" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if l := c.Limits(); l.PerPage != 25 || l.MaxPerPage != 500 {
		t.Errorf("Limits() = %+v", l)
	}
	if c.Location.String() != "Europe/London" {
		t.Errorf("Location = %s", c.Location)
	}
	if c.LogLevel != log.DebugLevel {
		t.Errorf("LogLevel = %s", c.LogLevel)
	}
	if c.AuthMode != AuthNone || c.AuthScope != "manage:options" {
		t.Errorf("auth = %q/%q", c.AuthMode, c.AuthScope)
	}
}

func TestLoadServerConfigFromDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.env")
	content := strings.Join([]string{
		"DB_DSN=root@tcp(db)/wp",
		"TABLE_PREFIX=site2_",
		"AUTH_MODE=hs256",
		"AUTH_SECRET=s3cret",
		"AUTH_ISSUER=https://issuer.example/",
		"AUTH_AUDIENCE=monolog-viewer",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	c, err := LoadServerConfig(v)
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}
	if c.TablePrefix != "site2_" || c.AuthMode != AuthHS256 || c.AuthSecret != "s3cret" {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadServerConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing dsn", map[string]string{}, "DB_DSN"},
		{"bad timezone", map[string]string{"MONOLOG_DB_DSN": "x", "MONOLOG_TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"per page above max", map[string]string{"MONOLOG_DB_DSN": "x", "MONOLOG_PER_PAGE": "900"}, "PER_PAGE"},
		{"hs256 without secret", map[string]string{"MONOLOG_DB_DSN": "x", "MONOLOG_AUTH_MODE": "hs256"}, "AUTH_SECRET"},
		{"unknown auth", map[string]string{"MONOLOG_DB_DSN": "x", "MONOLOG_AUTH_MODE": "basic"}, "AUTH_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MONOLOG_DB_DSN", "")
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			v, err := NewViper("")
			if err != nil {
				t.Fatalf("NewViper: %v", err)
			}
			_, err = LoadServerConfig(v)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestCredentialsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.AccessToken != "" || c.FilePath != path {
		t.Errorf("fresh config = %+v", c)
	}

	c.ServerURL = "http://localhost:8080"
	c.AccessToken = "token"
	if err := UpdateConfig(*c, path); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if again.ServerURL != "http://localhost:8080" || again.AccessToken != "token" {
		t.Errorf("reloaded config = %+v", again)
	}
}
