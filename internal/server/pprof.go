package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer exposes the pprof handlers on their own listener, kept off
// the page-serving port so profiling never reaches the public surface.
func StartPprofServer(addr string, logger *zap.Logger) {
	profiler := gin.New()
	pprof.Register(profiler)

	go func() {
		logger.Info("pprof listening", zap.String("addr", addr))
		if err := profiler.Run(addr); err != nil {
			logger.Fatal("pprof server failed", zap.Error(err))
		}
	}()
}
