package env

import (
	"os"
)

// PodName example: k8ssta-checkout-worker-6868d88fbd-bz8zv, falls back to the hostname
func PodName() string {
	if name := os.Getenv("PODNAME"); len(name) > 0 {
		return name
	}
	name, _ := os.Hostname()
	return name
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: worker
func AppName() string {
	return os.Getenv("APP_NAME")
}
