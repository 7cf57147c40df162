package analyzer

import (
	"github.com/raysh454/inspectra/internal/interfaces"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/webclient"
)

func init() {
	RegisterBackend(BackendSimulated, func(cfg Config, logger logging.Logger) (interfaces.Analyzer, error) {
		return NewSimulatedAnalyzer(cfg, logger, nil)
	})

	RegisterBackend(BackendRemote, func(cfg Config, logger logging.Logger) (interfaces.Analyzer, error) {
		wc, err := webclient.NewNetHTTPClient(cfg.WebClient, logger, nil)
		if err != nil {
			return nil, err
		}
		return NewRemoteAnalyzer(cfg, wc, logger)
	})
}
