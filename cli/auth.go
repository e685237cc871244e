package main

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/auth"
	cwConfig "github.com/usecakework/monolog-viewer/lib/config"
)

func login(configFile string, url string, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	if auth.IsTokenExpired(token) {
		return auth.ErrTokenExpired
	}

	config, err := cwConfig.LoadConfig(configFile)
	if err != nil {
		return err
	}

	if url != "" {
		config.ServerURL = strings.TrimRight(url, "/")
	}
	config.AccessToken = token
	log.Debug("saving credentials for " + config.ServerURL)

	return cwConfig.UpdateConfig(*config, configFile)
}

func isLoggedIn(config *cwConfig.Config) bool {
	return config.AccessToken != ""
}

// credentialsProvider falls back to unauthenticated requests for viewers that
// run with AUTH_MODE=none.
func credentialsProvider(config *cwConfig.Config) auth.CredentialsProvider {
	if !isLoggedIn(config) {
		return auth.NoCredentialsProvider{}
	}
	return auth.BearerCredentialsProvider{ConfigFile: config.FilePath}
}
