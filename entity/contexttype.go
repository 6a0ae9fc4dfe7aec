package entity

import (
	"github.com/tsinghua-fib-lab/trafficlight-scorer/clock"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	StreetManager() IStreetManager
	JunctionManager() IJunctionManager
	CarManager() ICarManager
	RuntimeConfig() *config.RuntimeConfig
}
