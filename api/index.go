package handler

import (
	"cleanbook/config"
	"cleanbook/di"
	"cleanbook/shared/logger"
	"net/http"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
