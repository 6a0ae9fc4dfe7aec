package junction

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Light 路口中一条入口道路的信号灯
type Light struct {
	Street   entity.StreetID
	Schedule trafficlight.Schedule
}

// Junction 有排程的路口
type Junction struct {
	ctx entity.ITaskContext

	id     entity.IntersectionID
	lights []Light // 按循环顺序排列
	period int64   // 信号灯周期

	unscheduled []entity.StreetID // 驶入该路口但不在排程中的道路，永远红灯
}

// newJunction 创建并初始化一个新的Junction实例
// 功能：将排程文件中的(道路名, 绿灯时长)列表解析为道路ID并编译为绿灯窗口
// 参数：ctx-任务上下文，base-路口排程，streetManager-道路管理器
// 返回：初始化完成的Junction实例，道路名不存在或重复时返回错误
// 说明：路口不是任何道路的端点、或有驶入道路未被排程时只记录告警
func newJunction(
	ctx entity.ITaskContext,
	base input.IntersectionSchedule,
	streetManager entity.IStreetManager,
) (*Junction, error) {
	j := &Junction{
		ctx: ctx,
		id:  entity.IntersectionID(base.IntersectionID),
	}

	ids := make([]entity.StreetID, len(base.Lights))
	for i, l := range base.Lights {
		id, err := streetManager.Lookup(l.Street)
		if err != nil {
			return nil, fmt.Errorf("intersection %d: %w", j.id, err)
		}
		if s := streetManager.Get(id); s.End() != j.id {
			// 信号灯仍作用于该道路的末端
			log.Warnf("intersection %d schedules %v which ends at intersection %d", j.id, s, s.End())
		}
		ids[i] = id
	}
	if dup := lo.FindDuplicates(ids); len(dup) > 0 {
		return nil, fmt.Errorf("%w: intersection %d lists %q twice",
			entity.ErrDuplicateLight, j.id, streetManager.Get(dup[0]).Name())
	}

	schedules := trafficlight.Compile(lo.Map(base.Lights, func(l input.Light, _ int) int32 {
		return l.Duration
	}))
	j.lights = lo.Map(schedules, func(s trafficlight.Schedule, i int) Light {
		return Light{Street: ids[i], Schedule: s}
	})
	if len(schedules) > 0 {
		j.period = schedules[0].Period
	}

	if !streetManager.HasIntersection(j.id) {
		log.Warnf("intersection %d is scheduled but no street touches it", j.id)
	}
	j.unscheduled, _ = lo.Difference(streetManager.Incoming(j.id), ids)
	if len(j.unscheduled) > 0 {
		log.Warnf("intersection %d leaves incoming streets %v unscheduled, they stay red",
			j.id, lo.Map(j.unscheduled, func(id entity.StreetID, _ int) string {
				return streetManager.Get(id).Name()
			}))
	}
	return j, nil
}

// ID 获取Junction的唯一标识符，如果Junction为nil则返回-1
func (j *Junction) ID() entity.IntersectionID {
	if j == nil {
		return -1
	}
	return j.id
}

// Unscheduled 驶入该路口但永远红灯的道路，升序
func (j *Junction) Unscheduled() []entity.StreetID {
	return j.unscheduled
}

// Green 获取t时刻为绿灯的道路，没有则返回false
func (j *Junction) Green(t entity.Tick) (entity.StreetID, bool) {
	for _, l := range j.lights {
		if l.Schedule.IsGreen(t) {
			return l.Street, true
		}
	}
	return -1, false
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction %d(lights=%d, period=%d, unscheduled=%d)", j.id, len(j.lights), j.period, len(j.unscheduled))
}
