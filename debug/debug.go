package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Encode bool
	Await  bool
	Eval   bool
	Serve  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Encode = boolEnv("AWJ_DEBUG_ENCODE")
	d.Await = boolEnv("AWJ_DEBUG_AWAIT")
	d.Eval = boolEnv("AWJ_DEBUG_EVAL")
	d.Serve = boolEnv("AWJ_DEBUG_SERVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Encode() bool {
	return d.Encode
}
func Await() bool {
	return d.Await
}
func Eval() bool {
	return d.Eval
}
func Serve() bool {
	return d.Serve
}
