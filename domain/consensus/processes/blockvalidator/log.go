package blockvalidator

import (
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BLVL")
