/*Package metrics wraps datadog-go to record service metrics.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Counter of state transitions: *.count
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/x-xyz/checkout/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	envName := viper.GetString("env_name")
	if envName == "" {
		envName = env.EnvName()
	}
	appName := viper.GetString("app_name")
	if appName == "" {
		appName = env.AppName()
	}

	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: []string{
				// removes all tags associated with host
				"host:",
				"pod:" + env.PodName(),
				"env:" + envName,
				"app:" + appName,
			},
		},
	}
}

// Metrics prefixes every key with its package name and guards the datadog calls.
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

func (mt *Metrics) bumpSumPanic(key, tag string) {
	mt.datadog.BumpSum(key, 1, 1, "tag", tag)
}

func (mt *Metrics) recoverTo(name, key string, tags []string) {
	if err := recover(); err != nil {
		mt.bumpSumPanic(name, mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverTo("bumpavg.panic", key, tags)
	mt.datadog.BumpAvg(mt.pkgName+`.`+key, val, 1, tags...)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverTo("bumpsum.panic", key, tags)
	mt.datadog.BumpSum(mt.pkgName+`.`+key, val, 1, tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverTo("bumphistogram.panic", key, tags)
	mt.datadog.BumpHistogram(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpTime starts a timer and returns a value on which End() stops it.
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		ddEnd: mt.datadog.BumpTime(mt.pkgName+`.`+key, 1, tags...),
		panicHandler: func() {
			mt.bumpSumPanic("bumptime.panic", mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
		},
	}
}

type timeTracker struct {
	ddEnd        Ender
	panicHandler func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.panicHandler()
		}
	}()
	t.ddEnd.End()
}
