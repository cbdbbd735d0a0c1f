package powhasher

import (
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
)

var log = logger.RegisterSubSystem("POWH")
