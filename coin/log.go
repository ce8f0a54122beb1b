package main

import (
	"os"

	"github.com/decred/slog"
	"github.com/p7r0x7/md5/mine"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Loggers per subsystem. A single backend logger is created and all subsystem loggers created from
// it write to standard error.
var (
	backendLog = slog.NewBackend(os.Stderr)

	log     = backendLog.Logger("COIN")
	mineLog = backendLog.Logger("MINE")
)

func init() {
	mine.UseLogger(mineLog)
}

// setLogLevels sets every subsystem logger to level. Unknown levels default to info.
func setLogLevels(level string) {
	lvl, _ := slog.LevelFromString(level)
	log.SetLevel(lvl)
	mineLog.SetLevel(lvl)
}
