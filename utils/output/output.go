// 评分结果输出，记录到MongoDB
package output

import (
	"context"
	"fmt"
	"time"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record 一次评分的记录
type Record struct {
	RunID    string    `bson:"run_id"`
	Network  string    `bson:"network"`  // 路网文件
	Schedule string    `bson:"schedule"` // 排程文件
	Score    int64     `bson:"score"`
	Finished int       `bson:"finished"`
	Cars     int       `bson:"cars"`
	At       time.Time `bson:"at"`
}

// Recorder 评分结果记录器
type Recorder interface {
	Record(ctx context.Context, r Record) error
	Close(ctx context.Context) error
}

// NopRecorder 不记录任何结果
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Record) error { return nil }
func (NopRecorder) Close(context.Context) error          { return nil }

// MongoRecorder 将评分结果写入MongoDB集合
type MongoRecorder struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New 根据输出配置创建记录器
// 参数：ctx-连接使用的上下文，c-输出配置
// 返回：URI为空时返回NopRecorder，否则返回连接到c.DB.c.Col的MongoRecorder
func New(ctx context.Context, c config.Output) (Recorder, error) {
	if c.URI == "" {
		return NopRecorder{}, nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect err: %w", err)
	}
	log.Infof("record scores to %s.%s", c.DB, c.Col)
	return &MongoRecorder{
		client: client,
		coll:   client.Database(c.DB).Collection(c.Col),
	}, nil
}

// Record 插入一条评分记录
func (m *MongoRecorder) Record(ctx context.Context, r Record) error {
	if _, err := m.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert record %s err: %w", r.RunID, err)
	}
	log.Debugf("recorded run %s", r.RunID)
	return nil
}

// Close 断开连接
func (m *MongoRecorder) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
