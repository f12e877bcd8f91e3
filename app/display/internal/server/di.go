package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/brand_spark/app/display/internal/data"
	"github.com/iWorld-y/brand_spark/app/display/internal/service"
	"github.com/iWorld-y/brand_spark/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewDispatcher,

	// Data providers
	data.NewData,
	data.NewSessionRepo,

	// UseCase providers
	usecase.NewAnalysisUseCase,

	// Service providers
	service.NewDisplayService,
)
