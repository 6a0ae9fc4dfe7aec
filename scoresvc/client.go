package scoresvc

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Score 评分接口的返回
type Score struct {
	Score    int64
	Finished int
	Cars     int
	RunID    string
}

// Client 评分服务客户端
type Client struct {
	client *connect.Client[structpb.Struct, structpb.Struct]
}

// NewClient 创建客户端
// 参数：httpClient-HTTP客户端，baseURL-服务地址，如http://localhost:51402
func NewClient(httpClient connect.HTTPClient, baseURL string) *Client {
	return &Client{
		client: connect.NewClient[structpb.Struct, structpb.Struct](
			httpClient, strings.TrimRight(baseURL, "/")+EvaluateProcedure,
		),
	}
}

// Evaluate 请求计算排程得分
// 参数：network-路网文档内容，schedule-排程文档内容
func (c *Client) Evaluate(ctx context.Context, network, schedule string) (Score, error) {
	req, err := structpb.NewStruct(map[string]any{
		"network":  network,
		"schedule": schedule,
	})
	if err != nil {
		return Score{}, err
	}
	resp, err := c.client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return Score{}, err
	}
	f := resp.Msg.GetFields()
	for _, k := range []string{"score", "finished", "cars", "run_id"} {
		if _, ok := f[k]; !ok {
			return Score{}, fmt.Errorf("response misses field %q", k)
		}
	}
	return Score{
		Score:    int64(f["score"].GetNumberValue()),
		Finished: int(f["finished"].GetNumberValue()),
		Cars:     int(f["cars"].GetNumberValue()),
		RunID:    f["run_id"].GetStringValue(),
	}, nil
}
