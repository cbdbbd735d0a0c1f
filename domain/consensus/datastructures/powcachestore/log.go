package powcachestore

import (
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
)

var log = logger.RegisterSubSystem("POWC")
