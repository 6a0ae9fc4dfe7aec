// 评分RPC服务，请求和响应均为google.protobuf.Struct
package scoresvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/task"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/output"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// EvaluateProcedure 评分接口的完整路径
	EvaluateProcedure = "/trafficlight.scorer.v1.ScoreService/Evaluate"
)

// Server 评分服务
type Server struct {
	rc       *config.RuntimeConfig
	recorder output.Recorder
}

// NewServer 创建新的服务实例
// 参数：rc-运行时配置，recorder-评分结果记录器（为nil时不记录）
func NewServer(rc *config.RuntimeConfig, recorder output.Recorder) *Server {
	if recorder == nil {
		recorder = output.NopRecorder{}
	}
	return &Server{rc: rc, recorder: recorder}
}

// NewHandler 注册评分接口
func NewHandler(s *Server) (string, http.Handler) {
	return EvaluateProcedure, connect.NewUnaryHandler(EvaluateProcedure, s.Evaluate)
}

// RunServer 启动服务
func RunServer(address string, s *Server) error {
	mux := http.NewServeMux()
	path, handler := NewHandler(s)
	mux.Handle(path, handler)

	log.Infof("Server listening at %v", address)
	return http.ListenAndServe(address, mux)
}

// Evaluate 计算排程得分
// 功能：解析请求中的路网和排程文档，运行模拟并返回得分
// 说明：文档格式错误返回InvalidArgument，文档之间不一致（如排程引用不存在的道路）返回FailedPrecondition
func (s *Server) Evaluate(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	fields := req.Msg.GetFields()
	networkText, err := stringField(fields, "network")
	if err != nil {
		return nil, err
	}
	scheduleText, err := stringField(fields, "schedule")
	if err != nil {
		return nil, err
	}
	schedule, err := input.ParseSchedule("schedule", scheduleText)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	network, err := input.ParseNetwork("network", networkText)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	runID := uuid.NewString()
	res, err := task.Evaluate(network, schedule, s.rc)
	if err != nil {
		return nil, connect.NewError(code(err), err)
	}
	log.WithField("run_id", runID).Infof("score: %d", res.Score)

	if err := s.recorder.Record(ctx, output.Record{
		RunID:    runID,
		Network:  "network",
		Schedule: "schedule",
		Score:    res.Score,
		Finished: res.Finished,
		Cars:     res.Cars,
		At:       time.Now(),
	}); err != nil {
		log.WithField("run_id", runID).Errorf("record err: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"score":    res.Score,
		"finished": res.Finished,
		"cars":     res.Cars,
		"run_id":   runID,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(resp), nil
}

func stringField(fields map[string]*structpb.Value, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("missing field %q", name))
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("field %q must be a string", name))
	}
	return s.StringValue, nil
}

// code 评分错误对应的状态码
func code(err error) connect.Code {
	switch {
	case errors.Is(err, entity.ErrUnknownStreet),
		errors.Is(err, entity.ErrDuplicateStreet),
		errors.Is(err, entity.ErrDuplicateLight),
		errors.Is(err, entity.ErrDuplicateJunction),
		errors.Is(err, entity.ErrDisconnectedRoute):
		return connect.CodeFailedPrecondition
	default:
		return connect.CodeInternal
	}
}
