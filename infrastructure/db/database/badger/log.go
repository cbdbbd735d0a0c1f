package badger

import "github.com/Hoosat-Oy/heavypow/infrastructure/logger"

var log = logger.RegisterSubSystem("BDGR")
