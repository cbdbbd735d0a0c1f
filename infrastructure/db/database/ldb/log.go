package ldb

import "github.com/Hoosat-Oy/heavypow/infrastructure/logger"

var log = logger.RegisterSubSystem("LDB")
