package editor

import "github.com/kataras/golog"

func silentLogger() *golog.Logger {
	l := golog.New()
	l.SetLevel("disable")
	return l
}
