package car

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
)

// Action 车辆程序中的一个动作，只有Wait和Drive两种
type Action interface {
	isAction()
	fmt.Stringer
}

// Wait 在道路末端排队，等待绿灯
type Wait struct {
	Street entity.StreetID
}

// Drive 驶过整条道路，需要Length步
type Drive struct {
	Street entity.StreetID
	Length int32
}

func (Wait) isAction()  {}
func (Drive) isAction() {}

func (a Wait) String() string {
	return fmt.Sprintf("Wait(%d)", a.Street)
}

func (a Drive) String() string {
	return fmt.Sprintf("Drive(%d, %d)", a.Street, a.Length)
}
