package app

import (
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/machinecoin-project/machinecoin-core/util/panics"
)

var log = logger.RegisterSubSystem("MCND")
var spawn = panics.GoroutineWrapperFunc(log)
