package mine

import "github.com/decred/slog"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}
