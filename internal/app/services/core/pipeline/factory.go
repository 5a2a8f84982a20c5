package pipeline

import (
	"finalform-service/internal/app/services/domains/questionnaire"

	"go.uber.org/zap"
)

// NewDefaultRouter returns a router with every production-ready domain
// processor registered. Lab, vital and wearable processors stay unregistered
// until they do real work; routing to those kinds fails fast instead of
// producing stub results.
func NewDefaultRouter(logger *zap.Logger) *Router {
	router := NewRouter(logger)
	router.Register(questionnaire.NewProcessor(logger))
	return router
}
