package server

import (
	"github.com/raysh454/inspectra/internal/app"
	"github.com/raysh454/inspectra/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address. Defaults to AppConfig.Server.ListenAddr.
	ListenAddr string

	AppConfig *app.Config
	Logger    logging.Logger

	// Dashboard is used as is when set; otherwise NewServer opens one from
	// AppConfig and closes it in Close.
	Dashboard *app.Dashboard
}
