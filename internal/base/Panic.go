package base

import "fmt"

func Panicf(msg string, args ...interface{}) {
	Panic(fmt.Errorf(msg, args...))
}

func Panic(err error) {
	panic(fmt.Errorf("%v%v%v[PANIC]%v %v",
		ANSI_FG1_RED, ANSI_BG1_WHITE, ANSI_BLINK0, ANSI_RESET, err))
}
