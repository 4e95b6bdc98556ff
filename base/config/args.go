package config

import "os"

var osArgs = func() []string {
	return os.Args[1:]
}
