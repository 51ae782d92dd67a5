// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/sirupsen/logrus"

// log is the package-level subsystem logger, tagged SCRIPT the way the
// rest of the node tags its per-package loggers.
var log = logrus.WithField("subsystem", "SCRIPT")

// logClosure is a lazily-evaluated fmt.Stringer. Trace calls wrap an
// expensive disassembly in one of these so the formatting only runs
// when tracing is actually enabled.
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
