package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/scoresvc"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/task"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/output"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// files 可重复出现的文件参数
type files []string

func (f *files) String() string {
	return strings.Join(*f, ",")
}

func (f *files) Set(v string) error {
	*f = append(*f, v)
	return nil
}

var (
	// 路网文件，可重复，与排程文件按出现顺序一一配对
	networks files
	// 排程文件，可重复
	schedules files
	// 本程序监听的RPC地址，设置后进入服务模式
	listenAddr = flag.String("listen", "", "RPC listening address (empty means batch mode), e.g. :51402")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path (empty means default config)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 路网解析结果的缓存地址，设置为空则禁用缓存功能
	cacheDir = flag.String("cache", "", "network cache dir path (empty means disable cache)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "scorer")
)

func init() {
	flag.Var(&networks, "network", "network file path (repeatable)")
	flag.Var(&schedules, "schedule", "schedule file path (repeatable, paired with -network in order)")
}

// loadConfig 获取配置，文件优先于Base64数据，都未设置时使用默认配置
func loadConfig() (config.Config, error) {
	switch {
	case *configPath != "":
		return config.Load(*configPath)
	case *configData != "":
		file, err := base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			return config.Config{}, fmt.Errorf("config data load err: %w", err)
		}
		return config.Parse(file)
	default:
		return config.Default(), nil
	}
}

// evaluatePair 计算一对(路网, 排程)文件的得分
// 说明：先解析排程再解析路网，任一步出错都不输出部分得分
func evaluatePair(
	ctx context.Context,
	networkPath, schedulePath string,
	rc *config.RuntimeConfig,
	recorder output.Recorder,
) (task.Result, error) {
	runID := uuid.NewString()
	entry := log.WithField("run_id", runID)

	schedule, err := input.LoadSchedule(schedulePath)
	if err != nil {
		return task.Result{}, err
	}
	network, err := input.LoadNetwork(networkPath, *cacheDir)
	if err != nil {
		return task.Result{}, err
	}
	res, err := task.Evaluate(network, schedule, rc)
	if err != nil {
		return task.Result{}, err
	}
	entry.Infof("%s on %s: %v", schedulePath, networkPath, task.NewReport(res))

	if err := recorder.Record(ctx, output.Record{
		RunID:    runID,
		Network:  networkPath,
		Schedule: schedulePath,
		Score:    res.Score,
		Finished: res.Finished,
		Cars:     res.Cars,
		At:       time.Now(),
	}); err != nil {
		entry.Errorf("record err: %v", err)
	}
	return res, nil
}

// batch 依次计算所有文件对的得分并输出
// 功能：每对输出一行“<排程文件> score: <得分>”，多于一对时最后输出带千位分隔符的总分
// 返回：失败的文件对数量
func batch(
	ctx context.Context,
	w io.Writer,
	networks, schedules []string,
	rc *config.RuntimeConfig,
	recorder output.Recorder,
) int {
	failed := 0
	total := int64(0)
	for i := range networks {
		res, err := evaluatePair(ctx, networks[i], schedules[i], rc, recorder)
		if err != nil {
			log.Errorf("%s: %v", schedules[i], err)
			failed++
			continue
		}
		fmt.Fprintf(w, "%s score: %d\n", schedules[i], res.Score)
		total += res.Score
	}
	if len(networks) > 1 {
		p := message.NewPrinter(language.English)
		p.Fprintf(w, "total score: %d\n", total)
	}
	return failed
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	c, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Debugf("%+v", c)

	ctx := context.Background()
	recorder, err := output.New(ctx, c.Output)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer recorder.Close(ctx)

	if *listenAddr != "" {
		if err := scoresvc.RunServer(*listenAddr, scoresvc.NewServer(rc, recorder)); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
		return
	}

	if len(networks) != len(schedules) || len(networks) == 0 {
		log.Fatalf("need the same positive number of -network and -schedule, got %d and %d", len(networks), len(schedules))
	}
	if failed := batch(ctx, os.Stdout, networks, schedules, rc, recorder); failed > 0 {
		recorder.Close(ctx)
		log.Fatalf("%d of %d evaluations failed", failed, len(networks))
	}
}
