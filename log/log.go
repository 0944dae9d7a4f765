// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package log

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the logger used by every package. It embeds a logrus.Entry with a
// "pkg" field.
type Log struct {
	*logrus.Entry
}

// Settings applied to every Log returned by New. They are populated by
// internal/flag and cli/cmd before any Log is created.
var (
	Debug bool

	// File, if set, receives all log output with size based rotation.
	File           string
	FileMaxSizeMB  = 50
	FileMaxBackups = 3
)

var (
	rotator     io.Writer
	rotatorOnce sync.Once
)

func New(pkg string) Log {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	if Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if len(File) > 0 {
		log.Formatter = &logrus.TextFormatter{DisableColors: true,
			FullTimestamp:          true,
			DisableLevelTruncation: true}
		log.SetOutput(fileWriter())
	}
	return Log{Entry: log.WithField("pkg", pkg)}
}

// With returns a copy of l with the additional field.
func (l Log) With(key string, value interface{}) Log {
	return Log{Entry: l.Entry.WithField(key, value)}
}

// fileWriter returns the single lumberjack.Logger shared by all Logs so that
// rotation is coordinated.
func fileWriter() io.Writer {
	rotatorOnce.Do(func() {
		rotator = &lumberjack.Logger{
			Filename:   File,
			MaxSize:    FileMaxSizeMB,
			MaxBackups: FileMaxBackups,
			Compress:   true,
		}
	})
	return rotator
}
