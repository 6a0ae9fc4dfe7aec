package car

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Plan 车辆的路线计划
type Plan struct {
	Route   []entity.StreetID // 路线上的道路，按行驶顺序
	Actions []Action          // 待执行的动作序列，为空表示已完成
}

// Build 将车辆路线编译为动作序列
// 功能：解析道路名，检查路线连通性，生成Wait/Drive交替的动作序列
// 参数：id-车辆ID，path-路网文件中的路线，streetManager-道路管理器，c-控制配置
// 返回：路线计划；道路名不存在时返回ErrUnknownStreet，strict_routes下路线不连通时返回ErrDisconnectedRoute
// 算法说明：
// 1. 第一条道路：车辆初始位于其末端，生成Wait(first)
// 2. 之后每条道路s：生成Drive(s, length)和Wait(s)
// 3. 丢弃最后一个Wait，到达最后一条道路末端即完成
// 4. 只有一条道路时按single_street_route处理：finish丢弃Wait(first)，stall保留
func Build(
	id entity.CarID,
	path input.CarPath,
	streetManager entity.IStreetManager,
	c config.Control,
) (Plan, error) {
	route := make([]entity.StreetID, len(path.Streets))
	for i, name := range path.Streets {
		sid, err := streetManager.Lookup(name)
		if err != nil {
			return Plan{}, fmt.Errorf("car %d: %w", id, err)
		}
		route[i] = sid
	}
	if len(route) == 0 {
		log.Panicf("car %d has empty route", id)
	}

	for i := 1; i < len(route); i++ {
		if streetManager.Connected(route[i-1], route[i]) {
			continue
		}
		from, to := streetManager.Get(route[i-1]), streetManager.Get(route[i])
		if c.StrictRoutes {
			return Plan{}, fmt.Errorf("%w: car %d from %q to %q", entity.ErrDisconnectedRoute, id, from.Name(), to.Name())
		}
		log.Warnf("car %d drives from %v to %v which are not connected", id, from, to)
	}

	actions := make([]Action, 0, 2*len(route)-1)
	actions = append(actions, Wait{Street: route[0]})
	for _, sid := range route[1:] {
		actions = append(actions,
			Drive{Street: sid, Length: streetManager.Get(sid).Length()},
			Wait{Street: sid},
		)
	}
	if len(route) > 1 || c.SingleStreetRoute != config.SingleStreetStall {
		actions = actions[:len(actions)-1]
	}
	return Plan{Route: route, Actions: actions}, nil
}
