package pow

import (
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/machinecoin-project/machinecoin-core/util/panics"
)

var log = logger.RegisterSubSystem("POWH")
var spawn = panics.GoroutineWrapperFunc(log)
