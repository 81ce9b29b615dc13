package config

import "os"

func envSet(key string) bool {
	v, ok := os.LookupEnv(key)
	return ok && v != ""
}
