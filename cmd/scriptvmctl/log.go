package main

import (
	"github.com/sirupsen/logrus"
)

// log is scriptvmctl's subsystem logger, tagged CTL the way the rest
// of the node tags its per-package loggers.
var log = logrus.WithField("subsystem", "CTL")
