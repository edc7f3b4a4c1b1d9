package usecase

import (
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/domain"
)

// loggingNavigator is the default navigation collaborator: it records the
// directive and nothing more. Real deployments plug their own Navigator in.
type loggingNavigator struct {
	logger *zap.Logger
}

func NewLoggingNavigator(logger *zap.Logger) domain.Navigator {
	return &loggingNavigator{logger: logger}
}

func (n *loggingNavigator) Navigate(screen string, params map[string]interface{}) {
	n.logger.Info("Navigation requested",
		zap.String("screen", screen),
		zap.Any("params", params))
}
