/*
Copyright © 2026 the acidbase authors.
This file is part of acidbase.

acidbase is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

acidbase is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with acidbase.  If not, see <http://www.gnu.org/licenses/>.
*/

package acidbaseutil

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Log receives progress and diagnostic messages. It writes to standard
// error by default.
var Log logrus.FieldLogger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
	return l
}

// setVerbosity switches Log between Info and Debug levels, if Log
// is a *logrus.Logger.
func setVerbosity(verbose bool) {
	l, ok := Log.(*logrus.Logger)
	if !ok {
		return
	}
	if verbose {
		l.Level = logrus.DebugLevel
	} else {
		l.Level = logrus.InfoLevel
	}
}
