package chaintip

import (
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TIPD")
