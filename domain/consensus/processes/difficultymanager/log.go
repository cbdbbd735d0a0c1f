package difficultymanager

import (
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
)

var log = logger.RegisterSubSystem("DAA")
